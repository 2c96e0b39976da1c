// Package translating wraps the external translation call and keeps an
// append-only log of successful translations. The log is audit data: this
// concept never reads it back, and entries are never updated or deleted.
package translating

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/hearth-social/hearth/server/internal/apperrors"
	"github.com/hearth-social/hearth/server/internal/docstore"
)

type TranslationDoc struct {
	docstore.Base
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
	TranslatedText string `json:"translatedText"`
}

type Concept struct {
	log    *docstore.Collection[TranslationDoc]
	client *resty.Client
}

func New(db *docstore.DB, baseURL string, timeout time.Duration) (*Concept, error) {
	log, err := docstore.NewCollection[TranslationDoc](db, "translations")
	if err != nil {
		return nil, err
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &Concept{log: log, client: client}, nil
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

// Translate calls the remote service and appends the result to the log.
// Remote failures surface as a single opaque external-service error.
func (c *Concept) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if text == "" {
		return "", apperrors.Invalidf("text must not be empty")
	}
	if targetLanguage == "" {
		return "", apperrors.Invalidf("target language must not be empty")
	}

	var out translateResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&translateRequest{Text: text, TargetLanguage: targetLanguage}).
		SetResult(&out).
		Post("/translate")
	if err != nil {
		return "", apperrors.Externalf(err, "could not translate text")
	}
	if resp.IsError() {
		return "", apperrors.Externalf(nil, "could not translate text: service returned %s", resp.Status())
	}

	doc := &TranslationDoc{Text: text, TargetLanguage: targetLanguage, TranslatedText: out.TranslatedText}
	if _, err := c.log.CreateOne(ctx, doc); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}
