// Package search keeps published projects in an elasticsearch index.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-backend/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// ProjectDocument is what gets stored per project. Localized fields keep every language.
type ProjectDocument struct {
	ID           string                 `json:"id"`
	Slug         string                 `json:"slug"`
	Title        entity.LocalizedString `json:"title"`
	Description  entity.LocalizedString `json:"description"`
	Technologies []string               `json:"technologies"`
	CoverImage   *string                `json:"cover_image,omitempty"`
	DisplayOrder int                    `json:"display_order"`
	UpdatedAt    string                 `json:"updated_at,omitempty"`
}

func NewProjectDocument(p entity.Project) ProjectDocument {
	techs := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		techs = append(techs, t.Name)
	}
	doc := ProjectDocument{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Technologies: techs,
		CoverImage:   p.CoverImage,
		DisplayOrder: p.DisplayOrder,
	}
	if p.UpdatedAt != nil {
		doc.UpdatedAt = p.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return doc
}

// ProjectIndex is a no-op when built without a client or index name.
type ProjectIndex struct {
	es     *elasticsearch.Client
	index  string
	logger *logrus.Logger
}

func NewProjectIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ProjectIndex {
	return &ProjectIndex{es: es, index: index, logger: logger}
}

func (x *ProjectIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

func (x *ProjectIndex) Index(ctx context.Context, p entity.Project) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(NewProjectDocument(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("index project %s: %w", p.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index project %s: %s", p.ID, res.Status())
	}
	return nil
}

// Delete removes a project document. A missing document is not an error.
func (x *ProjectIndex) Delete(ctx context.Context, id string) error {
	if !x.enabled() {
		return nil
	}
	req := esapi.DeleteRequest{Index: x.index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete project %s: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over titles, descriptions, technologies and slug.
func (x *ProjectIndex) Search(ctx context.Context, q string, size int) ([]ProjectDocument, error) {
	if !x.enabled() || q == "" {
		return []ProjectDocument{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title.*^3", "technologies^2", "description.*", "slug"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []any{"_score", map[string]any{"display_order": "asc"}},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		if res.StatusCode == http.StatusNotFound {
			return []ProjectDocument{}, nil
		}
		return nil, fmt.Errorf("search projects: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ProjectDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]ProjectDocument, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
