package nuget

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/hashicorp/go-retryablehttp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/outdated/internal/domain/entities"
	"github.com/rios0rios0/outdated/internal/domain/repositories"
)

const (
	registrationsType        = "RegistrationsBaseUrl"
	registrationsSemVer2Type = "RegistrationsBaseUrl/3.6.0"
)

// serviceIndex is the /v3/index.json document.
type serviceIndex struct {
	Resources []serviceResource `json:"resources"`
}

type serviceResource struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`
}

// registrationIndex is {base}/{id}/index.json.
type registrationIndex struct {
	Items []registrationPage `json:"items"`
}

// registrationPage carries its leaves inline, or only an @id to fetch them from.
type registrationPage struct {
	ID    string             `json:"@id"`
	Items []registrationLeaf `json:"items,omitempty"`
	Lower string             `json:"lower,omitempty"`
	Upper string             `json:"upper,omitempty"`
}

type registrationLeaf struct {
	CatalogEntry catalogEntry `json:"catalogEntry"`
}

type catalogEntry struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Listed  *bool  `json:"listed,omitempty"` // absent means listed
}

// RegistryRepository implements repositories.RegistryRepository against a NuGet v3 feed.
// The service index is resolved once per instance; nothing outlives the process.
type RegistryRepository struct {
	serviceIndexURL string
	username        string
	token           string
	client          *retryablehttp.Client

	mu                   sync.Mutex
	registrationsBaseURL string
}

var _ repositories.RegistryRepository = (*RegistryRepository)(nil)

// NewRegistryRepository creates a client for the feed described by settings.
// Retries on connection errors and 5xx responses follow settings.Retries.
func NewRegistryRepository(settings entities.RegistrySettings) repositories.RegistryRepository {
	client := retryablehttp.NewClient()
	client.RetryMax = settings.Retries
	client.Logger = newLeveledLogger()
	if settings.Timeout > 0 {
		client.HTTPClient.Timeout = settings.Timeout
	}

	return &RegistryRepository{
		serviceIndexURL: settings.URL,
		username:        settings.Username,
		token:           settings.Token,
		client:          client,
	}
}

// GetLatestVersion returns the newest listed version eligible under includePrerelease.
func (r *RegistryRepository) GetLatestVersion(
	ctx context.Context,
	packageName string,
	includePrerelease bool,
) (*entities.Version, error) {
	versions, err := r.ListVersions(ctx, packageName)
	if err != nil {
		return nil, err
	}
	if versions == nil {
		logger.Debugf("[nuget] Package %s not found in registry", packageName)
		return nil, nil
	}

	latest := entities.SelectLatest(versions, includePrerelease)
	if latest == nil {
		logger.Debugf(
			"[nuget] No eligible version for %s (prerelease: %t)",
			packageName, includePrerelease,
		)
	}
	return latest, nil
}

// ListVersions returns the listed versions of a package, following paged registrations.
// Unparseable versions are skipped.
func (r *RegistryRepository) ListVersions(
	ctx context.Context,
	packageName string,
) ([]*entities.Version, error) {
	base, err := r.registrationsBase(ctx)
	if err != nil {
		return nil, &entities.RegistryUnavailableError{Package: packageName, Err: err}
	}

	indexURL := base + strings.ToLower(packageName) + "/index.json"
	var index registrationIndex
	found, err := r.getJSON(ctx, indexURL, &index)
	if err != nil {
		return nil, &entities.RegistryUnavailableError{Package: packageName, Err: err}
	}
	if !found {
		return nil, nil
	}

	versions := make([]*entities.Version, 0)
	for _, page := range index.Items {
		leaves := page.Items
		if len(leaves) == 0 && page.ID != "" {
			leaves, err = r.fetchPage(ctx, page.ID)
			if err != nil {
				return nil, &entities.RegistryUnavailableError{Package: packageName, Err: err}
			}
		}

		for _, leaf := range leaves {
			entry := leaf.CatalogEntry
			if entry.Listed != nil && !*entry.Listed {
				continue
			}
			v, parseErr := entities.ParseVersion(entry.Version)
			if parseErr != nil {
				logger.Debugf("[nuget] Skipping version of %s: %v", packageName, parseErr)
				continue
			}
			versions = append(versions, v)
		}
	}
	return versions, nil
}

func (r *RegistryRepository) fetchPage(ctx context.Context, pageURL string) ([]registrationLeaf, error) {
	var page registrationPage
	found, err := r.getJSON(ctx, pageURL, &page)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("registration page %s not found", pageURL)
	}
	return page.Items, nil
}

// registrationsBase resolves the RegistrationsBaseUrl from the service index,
// preferring the SemVer 2.0 hive.
func (r *RegistryRepository) registrationsBase(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.registrationsBaseURL != "" {
		return r.registrationsBaseURL, nil
	}

	logger.Debugf("[nuget] Fetching service index from %s", r.serviceIndexURL)
	var index serviceIndex
	found, err := r.getJSON(ctx, r.serviceIndexURL, &index)
	if err != nil {
		return "", fmt.Errorf("failed to fetch service index: %w", err)
	}
	if !found {
		return "", fmt.Errorf("service index %s not found", r.serviceIndexURL)
	}

	var base string
	for _, resource := range index.Resources {
		if resource.Type == registrationsSemVer2Type {
			base = resource.ID
			break
		}
		if base == "" && strings.HasPrefix(resource.Type, registrationsType) {
			base = resource.ID
		}
	}
	if base == "" {
		return "", errors.New("service index has no RegistrationsBaseUrl resource")
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}

	logger.Debugf("[nuget] Using RegistrationsBaseUrl %s", base)
	r.registrationsBaseURL = base
	return base, nil
}

// getJSON decodes a 200 response into out. A 404 reports found=false without error.
func (r *RegistryRepository) getJSON(ctx context.Context, url string, out any) (bool, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.SetBasicAuth(r.username, r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	if decodeErr := json.NewDecoder(resp.Body).Decode(out); decodeErr != nil {
		return false, fmt.Errorf("failed to decode %s: %w", url, decodeErr)
	}
	return true, nil
}
