package isbn

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

type OpenLibrary struct {
	baseURL string
	client  *http.Client
}

func NewOpenLibrary(baseURL string, client *http.Client) *OpenLibrary {
	return &OpenLibrary{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (o *OpenLibrary) Name() string { return "openlibrary" }

type openLibraryEdition struct {
	Title   string `json:"title"`
	Authors []struct {
		Key string `json:"key"`
	} `json:"authors"`
	Publishers    []string            `json:"publishers"`
	PublishDate   string              `json:"publish_date"`
	NumberOfPages *int                `json:"number_of_pages"`
	Description   jsoniter.RawMessage `json:"description"`
}

func (o *OpenLibrary) Lookup(ctx context.Context, isbn string) (*Metadata, error) {
	var ed openLibraryEdition
	found, err := getJSON(ctx, o.client, fmt.Sprintf("%s/isbn/%s.json", o.baseURL, isbn), &ed)
	if err != nil || !found {
		return nil, err
	}

	md := &Metadata{
		Title:       ed.Title,
		PageCount:   ed.NumberOfPages,
		Description: parseDescription(ed.Description),
	}
	if len(ed.Publishers) > 0 {
		md.Publisher = &ed.Publishers[0]
	}
	if m := yearRe.FindString(ed.PublishDate); m != "" {
		year, _ := strconv.Atoi(m)
		md.PublishYear = &year
	}
	if len(ed.Authors) > 0 && ed.Authors[0].Key != "" {
		var author struct {
			Name string `json:"name"`
		}
		// a missing author record leaves the author empty
		if ok, err := getJSON(ctx, o.client, fmt.Sprintf("%s%s.json", o.baseURL, ed.Authors[0].Key), &author); err == nil && ok && author.Name != "" {
			md.Author = &author.Name
		}
	}
	return md, nil
}

// parseDescription accepts both "text" and {"value": "text"}.
func parseDescription(raw jsoniter.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	var obj struct {
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Value
	}
	return nil
}

// getJSON reports found=false on any non-200 status.
func getJSON(ctx context.Context, client *http.Client, url string, v any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return false, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return false, errors.Wrap(err, "decode")
	}
	return true, nil
}
