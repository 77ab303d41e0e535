package stabs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the SPARQL endpoint of the Linked Open Data Portal of
// the State Archives Basel-Stadt.
const DefaultEndpoint = "https://ld.bs.ch/query/"

// hgbSeriesRecord is the archive record containing all HGB series.
const hgbSeriesRecord = "https://ld.bs.ch/ais/Record/1027330"

// Serie is one series of the Historisches Grundbuch Basel.
type Serie struct {
	StabsID string `json:"stabsId"`
	Title   string `json:"title"`
	Link    string `json:"link"`
}

// Dossier is one dossier connected to a serie. Optional fields are empty
// when the archive record does not carry them.
type Dossier struct {
	StabsID         string `json:"stabsId"`
	Title           string `json:"title"`
	HouseName       string `json:"houseName,omitempty"`
	OldHousenumber  string `json:"oldHousenumber,omitempty"`
	Owner1862       string `json:"owner1862,omitempty"`
	DescriptiveNote string `json:"descriptiveNote,omitempty"`
	Link            string `json:"link"`
}

// Document is one document record included in a serie, typically from the
// serie "Regesten Klingental".
type Document struct {
	StabsID         string `json:"stabsId"`
	Title           string `json:"title"`
	Type            string `json:"type,omitempty"`
	DescriptiveNote string `json:"descriptiveNote,omitempty"`
	AssociatedDate  string `json:"associatedDate,omitempty"`
	Link            string `json:"link"`
}

// Client queries HGB metadata from the ld.bs.ch SPARQL endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the given SPARQL endpoint. An empty
// endpoint selects DefaultEndpoint.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		endpoint: endpoint,
		logger:   logger,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

// sparqlResponse mirrors the application/sparql-results+json format.
type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

const seriesQuery = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
SELECT ?link ?identifier ?title
WHERE {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type "Akte"@ger ;
    rico:isDirectlyIncludedIn <` + hgbSeriesRecord + `> .
}`

const dossiersQueryTemplate = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
PREFIX stabs-rico: <https://ld.bs.ch/ontologies/StABS-RiC/>
SELECT ?link ?identifier ?title ?note ?housenamebs ?oldhousenumber ?owner1862
WHERE {
    {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type "Akte"@ger ;
    rico:isDirectlyIncludedIn <%s> .
    }
    OPTIONAL {?link rico:generalDescription ?note .}
    OPTIONAL {?link stabs-rico:houseNameBS ?housenamebs .}
    OPTIONAL {?link stabs-rico:oldHousenumber ?oldhousenumber .}
    OPTIONAL {?link stabs-rico:owner1862 ?owner1862 .}
}`

const documentsQueryTemplate = `
PREFIX rico: <https://www.ica.org/standards/RiC/ontology#>
SELECT ?link ?identifier ?title ?type ?descriptivenote ?isassociatedwithdate
WHERE {
    {
    ?link rico:identifier ?identifier ;
    rico:title ?title ;
    rico:type ?type ;
    rico:isIncludedInTransitive <%s> .
    }
    OPTIONAL {?link rico:generalDescription ?descriptivenote .}
    OPTIONAL {?link rico:isAssociatedWithDate ?isassociatedwithdate .}
}`

// query runs a SPARQL SELECT and returns the raw bindings.
func (c *Client) query(ctx context.Context, sparql string) ([]map[string]string, error) {
	form := url.Values{}
	form.Set("query", sparql)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("SPARQL request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SPARQL endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed sparqlResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse SPARQL response: %w", err)
	}

	rows := make([]map[string]string, 0, len(parsed.Results.Bindings))
	for _, binding := range parsed.Results.Bindings {
		row := make(map[string]string, len(binding))
		for key, val := range binding {
			row[key] = val.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// QuerySeries returns all series of interest of the Historisches Grundbuch
// Basel.
func (c *Client) QuerySeries(ctx context.Context) ([]Serie, error) {
	rows, err := c.query(ctx, seriesQuery)
	if err != nil {
		return nil, err
	}

	series := make([]Serie, 0, len(rows))
	for _, row := range rows {
		series = append(series, Serie{
			StabsID: row["identifier"],
			Title:   row["title"],
			Link:    row["link"],
		})
	}
	return series, nil
}

// QueryDossiers returns all dossiers connected to the given serie URI. A
// serie without dossiers is logged and returned as nil without error.
func (c *Client) QueryDossiers(ctx context.Context, serieLink string) ([]Dossier, error) {
	rows, err := c.query(ctx, fmt.Sprintf(dossiersQueryTemplate, serieLink))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		c.logger.Warn("No dossier found for serie", "serie", serieLink)
		return nil, nil
	}

	dossiers := make([]Dossier, 0, len(rows))
	for _, row := range rows {
		dossiers = append(dossiers, Dossier{
			StabsID:         row["identifier"],
			Title:           row["title"],
			HouseName:       row["housenamebs"],
			OldHousenumber:  row["oldhousenumber"],
			Owner1862:       row["owner1862"],
			DescriptiveNote: row["note"],
			Link:            row["link"],
		})
	}
	return dossiers, nil
}

// QueryDocuments returns all document records included in the given serie
// URI, transitively. The query parameters are tuned for the serie "Regesten
// Klingental".
func (c *Client) QueryDocuments(ctx context.Context, serieLink string) ([]Document, error) {
	rows, err := c.query(ctx, fmt.Sprintf(documentsQueryTemplate, serieLink))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		c.logger.Warn("No document found for serie", "serie", serieLink)
		return nil, nil
	}

	documents := make([]Document, 0, len(rows))
	for _, row := range rows {
		documents = append(documents, Document{
			StabsID:         row["identifier"],
			Title:           row["title"],
			Type:            row["type"],
			DescriptiveNote: row["descriptivenote"],
			AssociatedDate:  row["isassociatedwithdate"],
			Link:            row["link"],
		})
	}
	return documents, nil
}

// GetDate resolves an associated-date record URI to its expressed date.
// An unresolvable record is logged and returned as empty without error.
func (c *Client) GetDate(ctx context.Context, dateLink string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dateLink+"?format=jsonld", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("date request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("No associated date record found",
			"link", dateLink,
			"status", resp.StatusCode)
		return "", nil
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return "", fmt.Errorf("failed to parse date record: %w", err)
	}
	return expressedDate(record), nil
}

// expressedDate extracts the RiC expressedDate value from a jsonld record.
func expressedDate(record map[string]any) string {
	value, ok := record["https://www.ica.org/standards/RiC/ontology#expressedDate"]
	if !ok {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["@value"].(string); ok {
			return s
		}
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["@value"].(string); ok {
					return s
				}
			}
			if s, ok := item.(string); ok {
				return s
			}
		}
	}
	return ""
}
