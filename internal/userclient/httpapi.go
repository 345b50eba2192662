package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"brainflip/internal/flashcards"
	"brainflip/internal/player"
	"brainflip/internal/quiz"
)

var ErrServiceUnavailable = errors.New("brainflip service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type quizzesResponse struct {
	Quizzes []quiz.Quiz `json:"quizzes"`
}

type attemptRequest struct {
	Answers []string `json:"answers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = "http://127.0.0.1:8080"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) ListQuizzes(ctx context.Context) ([]quiz.Quiz, error) {
	var payload quizzesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Quizzes, nil
}

func (c *HTTPClient) GetQuiz(ctx context.Context, quizID string) (quiz.Quiz, error) {
	if strings.TrimSpace(quizID) == "" {
		return quiz.Quiz{}, errors.New("quiz_id is required")
	}

	var item quiz.Quiz
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes/"+url.PathEscape(quizID), nil, &item); err != nil {
		return quiz.Quiz{}, err
	}
	return item, nil
}

func (c *HTTPClient) SubmitAttempt(ctx context.Context, quizID string, answers []string) (player.Result, error) {
	if strings.TrimSpace(quizID) == "" {
		return player.Result{}, errors.New("quiz_id is required")
	}
	if answers == nil {
		answers = []string{}
	}

	path := "/quizzes/" + url.PathEscape(quizID) + "/attempts"
	var result player.Result
	if err := c.doJSON(ctx, http.MethodPost, path, attemptRequest{Answers: answers}, &result); err != nil {
		return player.Result{}, err
	}
	return result, nil
}

func (c *HTTPClient) RandomFlashcard(ctx context.Context, excludeID string) (flashcards.Card, error) {
	path := "/flashcards/random"
	if trimmed := strings.TrimSpace(excludeID); trimmed != "" {
		query := url.Values{}
		query.Set("exclude_id", trimmed)
		path += "?" + query.Encode()
	}

	var card flashcards.Card
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &card); err != nil {
		return flashcards.Card{}, err
	}
	return card, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
