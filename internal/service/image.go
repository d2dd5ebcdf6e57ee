package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appconfig "github.com/dinnerplan/backend/config"
)

// ImageLookup resolves a search query to an image URL.
type ImageLookup interface {
	Configured() bool
	LookupImage(ctx context.Context, query string) (string, error)
}

const defaultSearchAPIURL = "https://customsearch.googleapis.com/customsearch/v1"

// ImageService looks up meal images through the Google Custom Search API and
// optionally mirrors them into S3 so stored URLs outlive the search result.
type ImageService struct {
	apiKey   string
	engineID string
	apiURL   string
	client   *http.Client
	s3Config *appconfig.S3Config
	logger   *zap.Logger
}

// NewImageService creates a new ImageService instance. s3Config may be nil,
// in which case the search result URL is stored directly.
func NewImageService(cfg *appconfig.Config, s3Config *appconfig.S3Config, logger *zap.Logger) *ImageService {
	apiURL := os.Getenv("IMAGE_SEARCH_API_URL")
	if apiURL == "" {
		apiURL = defaultSearchAPIURL
	}
	return &ImageService{
		apiKey:   cfg.ImageSearchKey,
		engineID: cfg.ImageSearchEngineID,
		apiURL:   apiURL,
		client:   &http.Client{Timeout: 10 * time.Second},
		s3Config: s3Config,
		logger:   logger,
	}
}

// Configured reports whether search credentials are present.
func (s *ImageService) Configured() bool {
	return s.apiKey != "" && s.engineID != ""
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// LookupImage returns an image URL for the query: the first image search hit,
// mirrored into S3 when a bucket is configured. Mirror failures degrade to
// the search result URL.
func (s *ImageService) LookupImage(ctx context.Context, query string) (string, error) {
	if !s.Configured() {
		return "", fmt.Errorf("image search is not configured")
	}

	params := url.Values{}
	params.Set("key", s.apiKey)
	params.Set("cx", s.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("num", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("could not build image search request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image search request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not decode image search response: %w", err)
	}
	if len(parsed.Items) == 0 {
		return "", fmt.Errorf("no image found for %q", query)
	}
	imageURL := parsed.Items[0].Link

	if s.s3Config != nil {
		mirrored, err := s.mirror(ctx, imageURL)
		if err != nil {
			s.logger.Warn("could not mirror image, storing search result URL",
				zap.String("url", imageURL), zap.Error(err))
			return imageURL, nil
		}
		return mirrored, nil
	}
	return imageURL, nil
}

// mirror downloads the image and uploads it under a generated key.
func (s *ImageService) mirror(ctx context.Context, imageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("could not build image download request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("could not read image body: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("meal-images/%s.jpg", uuid.New().String())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload image to S3: %w", err)
	}
	return s.s3Config.PublicURL(key), nil
}
