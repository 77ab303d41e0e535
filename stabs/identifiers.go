package stabs

import (
	"fmt"
	"regexp"
	"strconv"
)

var identifierSplitRe = regexp.MustCompile(`[\s/]+`)

// SerieID derives the project id of a serie from its archive identifier,
// for example "HGB 1 23" becomes "HGB_1_023".
func SerieID(identifier string) (string, error) {
	parts := splitIdentifier(identifier)
	if len(parts) < 3 {
		return "", fmt.Errorf("unexpected serie identifier %q", identifier)
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("unexpected serie identifier %q: %w", identifier, err)
	}
	return fmt.Sprintf("HGB_%s_%03d", parts[1], number), nil
}

// DossierID derives the project id of a dossier from its archive
// identifier, for example "HGB 1 23 / 45" becomes "HGB_1_023_045".
func DossierID(identifier string) (string, error) {
	parts := splitIdentifier(identifier)
	if len(parts) < 4 {
		return "", fmt.Errorf("unexpected dossier identifier %q", identifier)
	}
	serieNumber, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", fmt.Errorf("unexpected dossier identifier %q: %w", identifier, err)
	}
	dossierNumber, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", fmt.Errorf("unexpected dossier identifier %q: %w", identifier, err)
	}
	return fmt.Sprintf("HGB_%s_%03d_%03d", parts[1], serieNumber, dossierNumber), nil
}

// splitIdentifier splits an archive identifier on whitespace and slashes,
// dropping empty tokens ("HGB 1 23 / 45" and "HGB 1 23/45" split alike).
func splitIdentifier(identifier string) []string {
	raw := identifierSplitRe.Split(identifier, -1)
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
