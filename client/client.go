// Package client is a typed adapter over the Feather Press REST API. Every
// method maps to one endpoint and returns decoded entities or an *APIError
// carrying the server's status and business code.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/featherpress/featherpress/models"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%d message=%s", e.Status, e.Code, e.Message)
}

// Client talks to one Feather Press server.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Code: env.Code, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// User is the sanitized account shape returned by auth endpoints.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Register creates an account and returns it.
func (c *Client) Register(username, password string) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/auth/register",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates and returns the session token plus the account. The
// token is also remembered on the client.
func (c *Client) Login(username, password string) (string, *User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.do(http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, &out)
	if err != nil {
		return "", nil, err
	}
	c.token = out.Token
	return out.Token, &out.User, nil
}

func listPath(plural, createdBy string) string {
	p := "/api/" + plural
	if createdBy != "" {
		p += "?created_by=" + url.QueryEscape(createdBy)
	}
	return p
}

// ListPosts fetches posts, optionally filtered by author.
func (c *Client) ListPosts(createdBy string) ([]models.Post, error) {
	var out struct {
		Items []models.Post `json:"items"`
	}
	if err := c.do(http.MethodGet, listPath("posts", createdBy), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(id uint) (*models.Post, error) {
	var out struct {
		Post models.Post `json:"post"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// PostInput carries the creation fields for a post.
type PostInput struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// CreatePost creates a post and returns the stored entity.
func (c *Client) CreatePost(in PostInput) (*models.Post, error) {
	var out struct {
		Post models.Post `json:"post"`
	}
	if err := c.do(http.MethodPost, "/api/posts", in, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// UpdatePost replaces title, content and image_url of a post.
func (c *Client) UpdatePost(id uint, title, content, imageURL string) (*models.Post, error) {
	var out struct {
		Post models.Post `json:"post"`
	}
	body := map[string]string{"title": title, "content": content, "image_url": imageURL}
	if err := c.do(http.MethodPut, fmt.Sprintf("/api/posts/%d", id), body, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// QuoteInput carries the creation fields for a quote.
type QuoteInput struct {
	Text      string   `json:"text"`
	Author    string   `json:"author,omitempty"`
	CreatedBy string   `json:"created_by,omitempty"`
	Category  string   `json:"category,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// CreateQuote creates a quote and returns the stored entity.
func (c *Client) CreateQuote(in QuoteInput) (*models.Quote, error) {
	var out struct {
		Quote models.Quote `json:"quote"`
	}
	if err := c.do(http.MethodPost, "/api/quotes", in, &out); err != nil {
		return nil, err
	}
	return &out.Quote, nil
}

// ListQuotes fetches quotes, optionally filtered by creator.
func (c *Client) ListQuotes(createdBy string) ([]models.Quote, error) {
	var out struct {
		Items []models.Quote `json:"items"`
	}
	if err := c.do(http.MethodGet, listPath("quotes", createdBy), nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// GalleryInput carries the creation fields for a gallery.
type GalleryInput struct {
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	CreatedBy   string                `json:"created_by,omitempty"`
	Images      []models.GalleryImage `json:"images"`
	Tags        []string              `json:"tags,omitempty"`
}

// CreateGallery creates a gallery and returns the stored entity.
func (c *Client) CreateGallery(in GalleryInput) (*models.Gallery, error) {
	var out struct {
		Gallery models.Gallery `json:"gallery"`
	}
	if err := c.do(http.MethodPost, "/api/galleries", in, &out); err != nil {
		return nil, err
	}
	return &out.Gallery, nil
}

// MediaInput carries the creation fields shared by videos and audios.
type MediaInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	CreatedBy   string   `json:"created_by,omitempty"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags,omitempty"`
}

// CreateVideo creates a video and returns the stored entity.
func (c *Client) CreateVideo(in MediaInput) (*models.Video, error) {
	var out struct {
		Video models.Video `json:"video"`
	}
	if err := c.do(http.MethodPost, "/api/videos", in, &out); err != nil {
		return nil, err
	}
	return &out.Video, nil
}

// CreateAudio creates an audio and returns the stored entity.
func (c *Client) CreateAudio(in MediaInput) (*models.Audio, error) {
	var out struct {
		Audio models.Audio `json:"audio"`
	}
	if err := c.do(http.MethodPost, "/api/audios", in, &out); err != nil {
		return nil, err
	}
	return &out.Audio, nil
}

// Like increments the like counter of one item and returns the new value.
func (c *Client) Like(plural string, id uint) (int, error) {
	var out struct {
		Likes int `json:"likes"`
	}
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/%s/%d/like", plural, id), nil, &out); err != nil {
		return 0, err
	}
	return out.Likes, nil
}

// Unlike decrements the like counter and returns the new value.
func (c *Client) Unlike(plural string, id uint) (int, error) {
	var out struct {
		Likes int `json:"likes"`
	}
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/%s/%d/unlike", plural, id), nil, &out); err != nil {
		return 0, err
	}
	return out.Likes, nil
}

// Delete removes one content item as the given requester.
func (c *Client) Delete(plural string, id uint, userID uint, username string) error {
	q := url.Values{}
	if userID != 0 {
		q.Set("userId", strconv.FormatUint(uint64(userID), 10))
	}
	if username != "" {
		q.Set("username", username)
	}
	path := fmt.Sprintf("/api/%s/%d", plural, id)
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return c.do(http.MethodDelete, path, nil, nil)
}

// ListComments fetches the comments of one content item, oldest first.
func (c *Client) ListComments(plural string, id uint) ([]models.Comment, error) {
	var out struct {
		Comments []models.Comment `json:"comments"`
	}
	if err := c.do(http.MethodGet, fmt.Sprintf("/api/%s/%d/comments", plural, id), nil, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// AddComment appends a comment and returns the refreshed comment list.
func (c *Client) AddComment(plural string, id uint, text, author string) ([]models.Comment, error) {
	var out struct {
		Comments []models.Comment `json:"comments"`
	}
	body := map[string]string{"text": text, "author": author}
	if err := c.do(http.MethodPost, fmt.Sprintf("/api/%s/%d/comments", plural, id), body, &out); err != nil {
		return nil, err
	}
	return out.Comments, nil
}

// Upload is out of the typed surface; the multipart endpoint is consumed
// directly by browsers. ListUploads enumerates stored file URLs.
func (c *Client) ListUploads() ([]models.StoredFile, error) {
	var out struct {
		Items []models.StoredFile `json:"items"`
	}
	if err := c.do(http.MethodGet, "/api/uploads", nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
