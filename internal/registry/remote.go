package registry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/git-pkgs/workspaces/client"
	"github.com/git-pkgs/workspaces/internal/core"
)

func init() {
	Register("remote", func(source string, c *client.Client) (Registry, error) {
		if source == "" {
			return nil, fmt.Errorf("remote registry requires a base URL")
		}
		return NewRemote(source, c), nil
	})
}

// Remote talks to a crates.io-style registry API.
type Remote struct {
	baseURL string
	client  *client.Client
	urls    *remoteURLs
}

// NewRemote creates a remote registry client for the given base URL.
func NewRemote(baseURL string, c *client.Client) *Remote {
	if c == nil {
		c = client.DefaultClient()
	}
	r := &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  c,
	}
	r.urls = &remoteURLs{baseURL: r.baseURL}
	return r
}

func (r *Remote) Host() string {
	return r.baseURL
}

func (r *Remote) URLs() client.URLBuilder {
	return r.urls
}

// API shapes, crates.io response format.
type crateResponse struct {
	Crate    crateInfo     `json:"crate"`
	Versions []versionInfo `json:"versions"`
}

type crateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type versionInfo struct {
	Num         string `json:"num"`
	License     string `json:"license"`
	Checksum    string `json:"checksum"`
	Yanked      bool   `json:"yanked"`
	CreatedAt   string `json:"created_at"`
	PublishedBy struct {
		Login string `json:"login"`
	} `json:"published_by"`
}

type publishRequest struct {
	Name        string `json:"name"`
	Vers        string `json:"vers"`
	License     string `json:"license,omitempty"`
	Description string `json:"description,omitempty"`
}

func (r *Remote) Versions(ctx context.Context, name string) ([]core.Publication, error) {
	url := fmt.Sprintf("%s/api/v1/crates/%s", r.baseURL, name)

	var resp crateResponse
	if err := r.client.GetJSON(ctx, url, &resp); err != nil {
		return nil, r.mapError(err, name, "")
	}

	pubs := make([]core.Publication, len(resp.Versions))
	for i, v := range resp.Versions {
		var publishedAt time.Time
		if v.CreatedAt != "" {
			publishedAt, _ = time.Parse(time.RFC3339, v.CreatedAt)
		}
		var integrity string
		if v.Checksum != "" {
			integrity = "sha256-" + v.Checksum
		}
		pubs[i] = core.Publication{
			Name:        resp.Crate.ID,
			Version:     v.Num,
			License:     v.License,
			Description: resp.Crate.Description,
			Owner:       v.PublishedBy.Login,
			Integrity:   integrity,
			Yanked:      v.Yanked,
			PublishedAt: publishedAt,
		}
	}
	return pubs, nil
}

func (r *Remote) Publish(ctx context.Context, pub core.Publication) error {
	url := fmt.Sprintf("%s/api/v1/crates/new", r.baseURL)
	req := publishRequest{
		Name:        pub.Name,
		Vers:        pub.Version,
		License:     pub.License,
		Description: pub.Description,
	}
	if err := r.client.JSON(ctx, http.MethodPut, url, req, nil); err != nil {
		var httpErr *client.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusConflict:
				return &core.DuplicateVersionError{Name: pub.Name, Version: pub.Version}
			case http.StatusForbidden:
				return &core.NameCollisionError{Name: pub.Name}
			}
		}
		return err
	}
	return nil
}

func (r *Remote) Yank(ctx context.Context, name, version string) error {
	url := fmt.Sprintf("%s/api/v1/crates/%s/%s/yank", r.baseURL, name, version)
	if err := r.client.JSON(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return r.mapError(err, name, version)
	}
	return nil
}

func (r *Remote) Unyank(ctx context.Context, name, version string) error {
	url := fmt.Sprintf("%s/api/v1/crates/%s/%s/unyank", r.baseURL, name, version)
	if err := r.client.JSON(ctx, http.MethodPut, url, nil, nil); err != nil {
		return r.mapError(err, name, version)
	}
	return nil
}

func (r *Remote) mapError(err error, name, version string) error {
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) && httpErr.IsNotFound() {
		return &core.NotFoundError{Name: name, Version: version}
	}
	return err
}

type remoteURLs struct {
	baseURL string
}

func (u *remoteURLs) Registry(name, version string) string {
	if version != "" {
		return fmt.Sprintf("%s/crates/%s/%s", u.baseURL, name, version)
	}
	return fmt.Sprintf("%s/crates/%s", u.baseURL, name)
}

func (u *remoteURLs) Download(name, version string) string {
	if version == "" {
		return ""
	}
	return fmt.Sprintf("%s/api/v1/crates/%s/%s/download", u.baseURL, name, version)
}

func (u *remoteURLs) Documentation(name, version string) string {
	return ""
}

func (u *remoteURLs) PURL(name, version string) string {
	return Coordinate(name, version)
}
