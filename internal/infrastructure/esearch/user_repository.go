package esearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"

	"github.com/accountd/accountd/internal/domain/entity"
	"github.com/accountd/accountd/internal/domain/repository"
)

// UserRepository is the document-store backend. One index, one document per
// user, document id == user id. Writes use refresh=wait_for so a use case
// reads its own writes within a request.
type UserRepository struct {
	es    *elasticsearch.Client
	index string
}

func NewUserRepository(es *elasticsearch.Client, index string) (*UserRepository, error) {
	r := &UserRepository{es: es, index: index}
	if err := r.ensureIndex(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureIndex creates the index with keyword mappings for the exact-match
// lookup fields. An index that already exists is left alone.
func (r *UserRepository) ensureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{r.index}}.Do(ctx, r.es)
	if err != nil {
		return err
	}
	defer func() { _ = exists.Body.Close() }()
	if exists.StatusCode == 200 {
		return nil
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": {"type": "text"},
				"email": {"type": "keyword"},
				"password": {"type": "keyword", "index": false},
				"email_validated": {"type": "boolean"},
				"disabled": {"type": "boolean"},
				"created_at": {"type": "date"},
				"updated_at": {"type": "date"},
				"email_validation_token": {"type": "keyword"},
				"email_validation_token_valid_thru": {"type": "date"},
				"profile_image": {"type": "keyword", "index": false}
			}
		}
	}`
	res, err := esapi.IndicesCreateRequest{Index: r.index, Body: strings.NewReader(mapping)}.Do(ctx, r.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", r.index, res.Status())
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) (*entity.User, error) {
	u.SetID(uuid.NewString())
	return u, r.indexDoc(ctx, u)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) (*entity.User, error) {
	existing, err := r.FindByID(ctx, u.ID())
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, entity.ErrUserNotFound
	}
	u.Touch()
	return u, r.indexDoc(ctx, u)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := esapi.DeleteRequest{Index: r.index, DocumentID: id, Refresh: "wait_for"}.Do(ctx, r.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete user %s: %s", id, res.Status())
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	res, err := esapi.GetRequest{Index: r.index, DocumentID: id}.Do(ctx, r.es)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == 404 {
		return nil, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("get user %s: %s", id, res.Status())
	}

	var doc struct {
		Source entity.Record `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&doc); err != nil {
		return nil, err
	}
	doc.Source.ID = id
	return entity.FromRecord(doc.Source)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOneByTerm(ctx, "email", email)
}

func (r *UserRepository) FindByEmailValidationToken(ctx context.Context, token string) (*entity.User, error) {
	return r.findOneByTerm(ctx, "email_validation_token", token)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	query := `{"query": {"match_all": {}}, "size": 10000, "sort": [{"created_at": "asc"}]}`
	hits, err := r.search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.User, 0, len(hits))
	for _, h := range hits {
		u, err := hitToUser(h)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) findOneByTerm(ctx context.Context, field, value string) (*entity.User, error) {
	body := map[string]any{
		"query": map[string]any{"term": map[string]any{field: value}},
		"size":  1,
	}
	b, _ := json.Marshal(body)
	hits, err := r.search(ctx, string(b))
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hitToUser(hits[0])
}

type hit struct {
	ID     string        `json:"_id"`
	Source entity.Record `json:"_source"`
}

func (r *UserRepository) search(ctx context.Context, query string) ([]hit, error) {
	res, err := r.es.Search(
		r.es.Search.WithContext(ctx),
		r.es.Search.WithIndex(r.index),
		r.es.Search.WithBody(strings.NewReader(query)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", r.index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []hit `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.Hits.Hits, nil
}

func hitToUser(h hit) (*entity.User, error) {
	h.Source.ID = h.ID
	return entity.FromRecord(h.Source)
}

func (r *UserRepository) indexDoc(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(u.Record())
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      r.index,
		DocumentID: u.ID(),
		Body:       bytes.NewReader(b),
		Refresh:    "wait_for",
	}
	res, err := req.Do(ctx, r.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", u.ID(), res.Status())
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
