package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"quicknotes-server/internal/domain"

	"github.com/go-kivik/kivik/v4"
)

type NoteRepository interface {
	Create(note *domain.Note) error
	FindByID(id string) (*domain.Note, error)
	List(userID string, tags []string) ([]*domain.Note, error)
	Update(note *domain.Note) error
	Delete(id string) error
}

type noteRepository struct {
	client *kivik.Client
	dbName string
}

func NewNoteRepository(client *kivik.Client, dbName string) NoteRepository {
	return &noteRepository{
		client: client,
		dbName: dbName,
	}
}

func noteDocID(id string) string {
	return fmt.Sprintf("note:%s", id)
}

func (r *noteRepository) Create(note *domain.Note) error {
	db := r.client.DB(r.dbName)

	_, err := db.Put(context.Background(), noteDocID(note.ID), note)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(id string) (*domain.Note, error) {
	db := r.client.DB(r.dbName)

	row := db.Get(context.Background(), noteDocID(id))

	var note domain.Note
	if err := row.ScanDoc(&note); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return &note, nil
}

// List returns the user's notes, newest first. A non-empty tags argument
// restricts the result to notes carrying at least one of the given tags.
func (r *noteRepository) List(userID string, tags []string) ([]*domain.Note, error) {
	db := r.client.DB(r.dbName)

	selector := map[string]interface{}{
		"user_id": userID,
		"title":   map[string]interface{}{"$exists": true},
	}
	if len(tags) > 0 {
		selector["tags"] = map[string]interface{}{
			"$elemMatch": map[string]interface{}{"$in": tags},
		}
	}

	query := map[string]interface{}{
		"selector": selector,
	}

	rows := db.Find(context.Background(), query)
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		if err := rows.ScanDoc(&note); err != nil {
			continue
		}
		notes = append(notes, &note)
	}

	// Mango sort requires a matching index; order in memory instead.
	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})

	return notes, nil
}

func (r *noteRepository) Update(note *domain.Note) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(note.ID)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch existing note for update: %w", err)
	}

	existingDoc["title"] = note.Title
	existingDoc["content"] = note.Content
	existingDoc["tags"] = note.Tags
	existingDoc["updated_at"] = note.UpdatedAt

	_, err := db.Put(context.Background(), docID, existingDoc)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	return nil
}

func (r *noteRepository) Delete(id string) error {
	db := r.client.DB(r.dbName)
	docID := noteDocID(id)

	var existingDoc map[string]interface{}
	row := db.Get(context.Background(), docID)
	if err := row.ScanDoc(&existingDoc); err != nil {
		if kivik.HTTPStatus(err) == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("failed to fetch note for delete: %w", err)
	}

	// A _deleted Put removes the document under the current revision.
	existingDoc["_deleted"] = true
	if _, err := db.Put(context.Background(), docID, existingDoc); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}
