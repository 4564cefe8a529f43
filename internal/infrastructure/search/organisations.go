// Package search keeps an Elasticsearch directory of organisations so members
// can find the organisations they can see by name or description.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/internal/domain/entity"
)

const (
	defaultSize = 10
	maxSize     = 50
)

// orgMapping keeps ids as keywords so term filters match them exactly.
const orgMapping = `{
  "mappings": {
    "properties": {
      "org_id":      {"type": "keyword"},
      "owner_id":    {"type": "keyword"},
      "member_ids":  {"type": "keyword"},
      "name":        {"type": "text"},
      "description": {"type": "text"},
      "created_at":  {"type": "date"},
      "updated_at":  {"type": "date"}
    }
  }
}`

type orgDocument struct {
	OrgID       string    `json:"org_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	OwnerID     string    `json:"owner_id"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrgDirectory indexes and searches organisations. A directory without a
// client is disabled: writes are no-ops and searches return nothing.
type OrgDirectory struct {
	ES      *elasticsearch.Client
	Index   string
	Logger  logrus.FieldLogger
	Timeout time.Duration
}

func NewOrgDirectory(es *elasticsearch.Client, index string, logger logrus.FieldLogger) *OrgDirectory {
	return &OrgDirectory{ES: es, Index: index, Logger: logger, Timeout: 3 * time.Second}
}

func (d *OrgDirectory) Enabled() bool {
	return d != nil && d.ES != nil && d.Index != ""
}

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (d *OrgDirectory) EnsureIndex(ctx context.Context) error {
	if !d.Enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()

	res, err := d.ES.Indices.Exists([]string{d.Index}, d.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return fmt.Errorf("es index exists: %w", err)
	}
	drain(res)
	if res.StatusCode == 200 {
		return nil
	}

	res, err = d.ES.Indices.Create(d.Index,
		d.ES.Indices.Create.WithContext(c),
		d.ES.Indices.Create.WithBody(strings.NewReader(orgMapping)),
	)
	if err != nil {
		return fmt.Errorf("es create index: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

// IndexOrganisation upserts the document for org with its current member set.
func (d *OrgDirectory) IndexOrganisation(ctx context.Context, org *entity.Organisation, memberIDs []uuid.UUID) error {
	if !d.Enabled() {
		return nil
	}
	doc := orgDocument{
		OrgID:       org.ID.String(),
		Name:        org.Name,
		Description: org.Description,
		OwnerID:     org.OwnerID.String(),
		MemberIDs:   make([]string, 0, len(memberIDs)),
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
	for _, id := range memberIDs {
		doc.MemberIDs = append(doc.MemberIDs, id.String())
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{Index: d.Index, DocumentID: doc.OrgID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()
	res, err := req.Do(c, d.ES)
	if err != nil {
		d.log().WithError(err).WithField("org_id", doc.OrgID).Warn("es index failed")
		return err
	}
	defer drain(res)
	if res.IsError() {
		d.log().WithField("status", res.Status()).WithField("org_id", doc.OrgID).Warn("es index response error")
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match over name and description, restricted to
// organisations viewerID owns or belongs to. An empty query lists them all.
func (d *OrgDirectory) Search(ctx context.Context, viewerID uuid.UUID, q string, size int) ([]entity.Organisation, error) {
	if !d.Enabled() {
		return []entity.Organisation{}, nil
	}
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	b, err := json.Marshal(buildQuery(viewerID, q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, d.Timeout)
	defer cancel()
	res, err := d.ES.Search(
		d.ES.Search.WithContext(c),
		d.ES.Search.WithIndex(d.Index),
		d.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search: %w", err)
	}
	defer drain(res)
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source orgDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("es search decode: %w", err)
	}

	out := make([]entity.Organisation, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		org, err := h.Source.organisation()
		if err != nil {
			d.log().WithError(err).WithField("org_id", h.Source.OrgID).Warn("skipping malformed search document")
			continue
		}
		out = append(out, org)
	}
	return out, nil
}

func buildQuery(viewerID uuid.UUID, q string, size int) map[string]any {
	viewer := viewerID.String()
	var must any = map[string]any{"match_all": map[string]any{}}
	if q = strings.TrimSpace(q); q != "" {
		must = map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		}
	}
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must": must,
				"filter": map[string]any{
					"bool": map[string]any{
						"should": []any{
							map[string]any{"term": map[string]any{"owner_id": viewer}},
							map[string]any{"term": map[string]any{"member_ids": viewer}},
						},
						"minimum_should_match": 1,
					},
				},
			},
		},
	}
}

func (doc orgDocument) organisation() (entity.Organisation, error) {
	id, err := uuid.Parse(doc.OrgID)
	if err != nil {
		return entity.Organisation{}, err
	}
	owner, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return entity.Organisation{}, err
	}
	return entity.Organisation{
		ID:          id,
		Name:        doc.Name,
		Description: doc.Description,
		OwnerID:     owner,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}

func (d *OrgDirectory) log() logrus.FieldLogger {
	if d.Logger == nil {
		return logrus.StandardLogger()
	}
	return d.Logger
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
