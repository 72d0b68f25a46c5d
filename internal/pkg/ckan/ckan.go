package ckan

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// CKAN default max page size
const defaultPageSize = 32000

// Record is one raw row from the datastore, keyed by the source column names.
type Record map[string]any

type Client struct {
	endpoint   string
	resourceID string
	token      string
	client     *http.Client

	// PageSize is the datastore_search limit parameter.
	PageSize int
	// Delay between page requests, to be nice to the API.
	Delay time.Duration
}

type searchResponse struct {
	Success bool `json:"success"`
	Error   any  `json:"error,omitempty"`
	Result  struct {
		Total   int      `json:"total"`
		Records []Record `json:"records"`
	} `json:"result"`
}

func New(endpoint, resourceID, token string) *Client {
	return &Client{
		endpoint:   endpoint,
		resourceID: resourceID,
		token:      token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		PageSize: defaultPageSize,
		Delay:    500 * time.Millisecond,
	}
}

// UseDefaultClient makes the client go through http.DefaultClient so tests
// can swap in a mock transport.
func (c *Client) UseDefaultClient() {
	c.client = http.DefaultClient
}

// FetchAll pages through the datastore until an empty or short page,
// concatenating results. A request error mid-way is logged and whatever was
// already accumulated is returned; an error before the first page is fatal.
func (c *Client) FetchAll() ([]Record, error) {
	var all []Record
	offset := 0

	for {
		log.Printf("Fetching records %d to %d...", offset, offset+c.PageSize)

		records, err := c.fetchPage(c.PageSize, offset)
		if err != nil {
			if len(all) > 0 {
				log.Printf("Error fetching data: %v", err)
				log.Printf("Returning %d records fetched so far", len(all))
				return all, nil
			}
			return nil, err
		}

		if len(records) == 0 {
			break
		}

		all = append(all, records...)
		log.Printf("  Fetched %d records (total: %d)", len(records), len(all))

		if len(records) < c.PageSize {
			break
		}

		offset += c.PageSize
		time.Sleep(c.Delay)
	}

	return all, nil
}

func (c *Client) fetchPage(limit, offset int) ([]Record, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("resource_id", c.resourceID)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	u.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ckan http %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	if !out.Success {
		return nil, fmt.Errorf("ckan API returned error: %v", out.Error)
	}

	return out.Result.Records, nil
}
