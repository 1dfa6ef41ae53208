package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"quicknotes-server/internal/cache"
	"quicknotes-server/internal/domain"
	"quicknotes-server/internal/events"
	"quicknotes-server/internal/repository"

	"github.com/google/uuid"
)

type NoteService struct {
	repo     repository.NoteRepository
	cache    cache.Cache
	cacheTTL time.Duration
	hub      *events.Hub
}

func NewNoteService(repo repository.NoteRepository, c cache.Cache, cacheTTL time.Duration, hub *events.Hub) *NoteService {
	return &NoteService{
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
		hub:      hub,
	}
}

// listCacheKey is deterministic per (user, filter): the unfiltered list and
// each distinct tag filter get their own namespaced key, and the filter tags
// are sorted so [b,a] and [a,b] land on the same entry.
func listCacheKey(userID string, tags []string) string {
	if len(tags) == 0 {
		return fmt.Sprintf("notes:%s:all", userID)
	}

	sorted := make([]string, len(tags))
	copy(sorted, tags)
	sort.Strings(sorted)

	return fmt.Sprintf("notes:%s:tags:%s", userID, strings.Join(sorted, ","))
}

// invalidateList drops only the unfiltered entry. Filtered entries stay
// until their TTL elapses. Cache errors never fail the write that triggered
// the invalidation.
func (s *NoteService) invalidateList(userID string) {
	key := listCacheKey(userID, nil)
	if err := s.cache.Del(key); err != nil {
		log.Printf("cache invalidation failed for %s: %v", key, err)
	}
}

func (s *NoteService) notify(msgType events.MessageType, note *domain.Note) {
	if s.hub == nil {
		return
	}

	msg, err := events.NewMessage(msgType, note)
	if err != nil {
		return
	}
	s.hub.BroadcastToUser(note.UserID, msg)
}

func (s *NoteService) Create(userID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	note := &domain.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     req.Title,
		Content:   req.Content,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	s.invalidateList(userID)
	s.notify(events.TypeNoteCreated, note)

	return note, nil
}

// List serves from the cache when possible and falls back to the record
// store, repopulating the cache with a fixed TTL. A broken or unreachable
// cache degrades to a plain store read.
func (s *NoteService) List(userID string, tags []string) ([]*domain.Note, error) {
	key := listCacheKey(userID, tags)

	if data, err := s.cache.Get(key); err == nil {
		var notes []*domain.Note
		if err := json.Unmarshal(data, &notes); err == nil {
			return notes, nil
		}
		log.Printf("discarding undecodable cache entry %s", key)
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("cache read failed for %s: %v", key, err)
	}

	notes, err := s.repo.List(userID, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []*domain.Note{}
	}

	if data, err := json.Marshal(notes); err == nil {
		if err := s.cache.Set(key, data, s.cacheTTL); err != nil {
			log.Printf("cache write failed for %s: %v", key, err)
		}
	}

	return notes, nil
}

func (s *NoteService) Get(userID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(noteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	// Ownership folds into not-found so note IDs cannot be probed.
	if note.UserID != userID {
		return nil, ErrNoteNotFound
	}

	return note, nil
}

func (s *NoteService) Update(userID, noteID string, req *domain.UpdateNoteRequest) (*domain.Note, error) {
	note, err := s.Get(userID, noteID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	note.UpdatedAt = time.Now()

	if err := s.repo.Update(note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	s.invalidateList(userID)
	s.notify(events.TypeNoteUpdated, note)

	return note, nil
}

// Delete removes the note and returns its prior state.
func (s *NoteService) Delete(userID, noteID string) (*domain.Note, error) {
	note, err := s.Get(userID, noteID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(note.ID); err != nil {
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	s.invalidateList(userID)
	s.notify(events.TypeNoteDeleted, note)

	return note, nil
}
