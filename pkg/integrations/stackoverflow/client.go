package stackoverflow

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/matzehuels/libscope/pkg/cache"
	"github.com/matzehuels/libscope/pkg/integrations"
)

const (
	defaultBaseURL = "https://api.stackexchange.com/2.3"
	site           = "stackoverflow"
)

var codeRE = regexp.MustCompile(`(?s)<code>(.*?)</code>`)

// Question is a search hit from the Stack Exchange API.
type Question struct {
	ID    int    `json:"question_id"`
	Title string `json:"title"`
	Link  string `json:"link"`
	Score int    `json:"score"`
}

// Answer is an answer body with its HTML intact.
type Answer struct {
	ID         int    `json:"answer_id"`
	QuestionID int    `json:"question_id"`
	Score      int    `json:"score"`
	Body       string `json:"body"`
	Accepted   bool   `json:"is_accepted"`
}

type wrapper[T any] struct {
	Items          []T  `json:"items"`
	HasMore        bool `json:"has_more"`
	QuotaRemaining int  `json:"quota_remaining"`
}

// Client provides access to the Stack Exchange API for Stack Overflow.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a Stack Overflow client with the given cache backend.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "stackoverflow", cacheTTL, map[string]string{"Accept": "application/json"}),
		baseURL: defaultBaseURL,
	}
}

// SearchQuestions returns the top-voted python-tagged questions for query.
func (c *Client) SearchQuestions(ctx context.Context, query string, pageSize int) ([]Question, error) {
	if pageSize <= 0 {
		pageSize = 5
	}
	var questions []Question
	err := c.Cached(ctx, fmt.Sprintf("search:%d:%s", pageSize, query), false, &questions, func() error {
		var data wrapper[Question]
		url := fmt.Sprintf("%s/search/advanced?order=desc&sort=votes&q=%s&tagged=python&site=%s&pagesize=%d",
			c.baseURL, integrations.URLEncode(query), site, pageSize)
		if err := c.Get(ctx, url, &data); err != nil {
			return fmt.Errorf("stackoverflow search: %w", err)
		}
		questions = data.Items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// TopAnswers fetches answers for the given questions and returns the
// highest-voted answer of each, in the order the questions were given.
// Questions without answers are skipped.
func (c *Client) TopAnswers(ctx context.Context, questionIDs []int) ([]Answer, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(questionIDs))
	for i, id := range questionIDs {
		ids[i] = strconv.Itoa(id)
	}
	joined := strings.Join(ids, ";")

	var answers []Answer
	err := c.Cached(ctx, "answers:"+joined, false, &answers, func() error {
		var data wrapper[Answer]
		url := fmt.Sprintf("%s/questions/%s/answers?order=desc&sort=votes&site=%s&filter=withbody",
			c.baseURL, joined, site)
		if err := c.Get(ctx, url, &data); err != nil {
			return fmt.Errorf("stackoverflow answers: %w", err)
		}
		answers = data.Items
		return nil
	})
	if err != nil {
		return nil, err
	}
	return topPerQuestion(questionIDs, answers), nil
}

func topPerQuestion(order []int, answers []Answer) []Answer {
	best := make(map[int]Answer, len(order))
	for _, a := range answers {
		if cur, ok := best[a.QuestionID]; !ok || a.Score > cur.Score {
			best[a.QuestionID] = a
		}
	}
	out := make([]Answer, 0, len(best))
	for _, id := range order {
		if a, ok := best[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// CodeFragments returns the unescaped contents of every <code> element in
// body that is at least minLen characters long after trimming.
func CodeFragments(body string, minLen int) []string {
	var out []string
	for _, m := range codeRE.FindAllStringSubmatch(body, -1) {
		code := strings.TrimSpace(html.UnescapeString(m[1]))
		if len(code) >= minLen {
			out = append(out, code)
		}
	}
	return out
}

// QuestionURL returns the canonical link for a question ID.
func QuestionURL(id int) string {
	return fmt.Sprintf("https://stackoverflow.com/questions/%d", id)
}
