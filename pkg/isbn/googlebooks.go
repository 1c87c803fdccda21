package isbn

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

type GoogleBooks struct {
	baseURL string
	client  *http.Client
}

func NewGoogleBooks(baseURL string, client *http.Client) *GoogleBooks {
	return &GoogleBooks{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

func (g *GoogleBooks) Name() string { return "googlebooks" }

type googleVolumes struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     *string  `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			PageCount     *int     `json:"pageCount"`
			Description   *string  `json:"description"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (g *GoogleBooks) Lookup(ctx context.Context, isbn string) (*Metadata, error) {
	u := g.baseURL + "/volumes?" + url.Values{"q": {"isbn:" + isbn}}.Encode()
	var vols googleVolumes
	found, err := getJSON(ctx, g.client, u, &vols)
	if err != nil || !found {
		return nil, err
	}
	if vols.TotalItems == 0 || len(vols.Items) == 0 {
		return nil, nil
	}
	v := vols.Items[0].VolumeInfo
	md := &Metadata{
		Title:       v.Title,
		Publisher:   v.Publisher,
		PageCount:   v.PageCount,
		Description: v.Description,
	}
	if authors := strings.Join(v.Authors, ", "); authors != "" {
		md.Author = &authors
	}
	if len(v.PublishedDate) >= 4 {
		if year, err := strconv.Atoi(v.PublishedDate[:4]); err == nil {
			md.PublishYear = &year
		}
	}
	return md, nil
}
