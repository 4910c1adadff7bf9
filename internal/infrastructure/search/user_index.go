package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// UserIndex mirrors registered users into an Elasticsearch index.
// Passwords never leave the database.
type UserIndex struct {
	Client *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewUserIndex(client *elasticsearch.Client, index string, logger *logrus.Logger) *UserIndex {
	return &UserIndex{Client: client, Index: index, Logger: logger}
}

func userDocument(u *entity.User) map[string]any {
	return map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (x *UserIndex) IndexUser(ctx context.Context, u *entity.User) error {
	if x.Client == nil || x.Index == "" || u == nil {
		return nil
	}
	b, err := json.Marshal(userDocument(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.Index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.Client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		helpers.LogWarn(x.Logger, "es index response error", nil, logrus.Fields{"status": res.Status(), "user_id": u.ID})
		return fmt.Errorf("index user %s: %s", u.ID, res.Status())
	}
	return nil
}

// SearchUsers runs a multi_match query over username, email and names.
func (x *UserIndex) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if x.Client == nil || x.Index == "" {
		return []map[string]any{}, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := x.Client.Search(
		x.Client.Search.WithContext(c),
		x.Client.Search.WithIndex(x.Index),
		x.Client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
