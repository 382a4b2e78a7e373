package diagfmt

import (
	"encoding/json"
	"io"
	"path/filepath"
	"sort"

	"lintnames/internal/diag"
	"lintnames/internal/source"
)

const (
	sarifVersion = "2.1.0"
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
	Results     []sarifResult     `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules,omitempty"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifInvocation struct {
	Arguments           []string `json:"arguments,omitempty"`
	ExecutionSuccessful bool     `json:"executionSuccessful"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          sarifMessage    `json:"message"`
	Locations        []sarifLocation `json:"locations,omitempty"`
	RelatedLocations []sarifLocation `json:"relatedLocations,omitempty"`
	Fixes            []sarifFix      `json:"fixes,omitempty"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
	Message          *sarifMessage `json:"message,omitempty"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   uint32 `json:"startLine,omitempty"`
	StartColumn uint32 `json:"startColumn,omitempty"`
	EndLine     uint32 `json:"endLine,omitempty"`
	EndColumn   uint32 `json:"endColumn,omitempty"`
	ByteOffset  uint32 `json:"byteOffset"`
	ByteLength  uint32 `json:"byteLength"`
}

type sarifFix struct {
	Description     sarifMessage          `json:"description"`
	ArtifactChanges []sarifArtifactChange `json:"artifactChanges"`
}

type sarifArtifactChange struct {
	ArtifactLocation sarifArtifact      `json:"artifactLocation"`
	Replacements     []sarifReplacement `json:"replacements"`
}

type sarifReplacement struct {
	DeletedRegion   sarifRegion  `json:"deletedRegion"`
	InsertedContent sarifMessage `json:"insertedContent"`
}

func sarifLevel(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	}
	return "note"
}

func sarifLoc(fs *source.FileSet, span source.Span, mode PathMode) (sarifPhysical, bool) {
	f := fs.Get(span.File)
	if f == nil {
		return sarifPhysical{}, false
	}
	start, end := fs.Resolve(span)
	return sarifPhysical{
		ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(formatPath(f, fs, mode))},
		Region: sarifRegion{
			StartLine:   start.Line,
			StartColumn: start.Col,
			EndLine:     end.Line,
			EndColumn:   end.Col,
			ByteOffset:  span.Start,
			ByteLength:  span.Len(),
		},
	}, true
}

// buildSarif собирает SARIF-лог без сериализации.
func buildSarif(bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) sarifLog {
	items := bag.Items()

	// таблица правил: по одному на код, в порядке кодов
	codes := make([]diag.Code, 0)
	seen := make(map[diag.Code]bool)
	for _, d := range items {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	ruleIndex := make(map[diag.Code]int, len(codes))
	rules := make([]sarifRule, len(codes))
	for i, c := range codes {
		ruleIndex[c] = i
		rules[i] = sarifRule{ID: c.ID(), ShortDescription: sarifMessage{Text: c.Title()}}
	}

	results := make([]sarifResult, 0, len(items))
	for _, d := range items {
		res := sarifResult{
			RuleID:    d.Code.ID(),
			RuleIndex: ruleIndex[d.Code],
			Level:     sarifLevel(d.Severity),
			Message:   sarifMessage{Text: d.Message},
		}
		if phys, ok := sarifLoc(fs, d.Primary, meta.PathMode); ok {
			res.Locations = []sarifLocation{{PhysicalLocation: phys}}
		}
		for _, n := range d.Notes {
			if phys, ok := sarifLoc(fs, n.Span, meta.PathMode); ok {
				res.RelatedLocations = append(res.RelatedLocations, sarifLocation{
					PhysicalLocation: phys,
					Message:          &sarifMessage{Text: n.Msg},
				})
			}
		}
		for _, f := range sortedFixes(d.Fixes) {
			if sf, ok := sarifFixOf(fs, f, meta.PathMode); ok {
				res.Fixes = append(res.Fixes, sf)
			}
		}
		results = append(results, res)
	}

	return sarifLog{
		Version: sarifVersion,
		Schema:  sarifSchema,
		Runs: []sarifRun{{
			Tool: sarifTool{Driver: sarifDriver{
				Name:           meta.ToolName,
				Version:        meta.ToolVersion,
				InformationURI: meta.InformationURI,
				Rules:          rules,
			}},
			Invocations: []sarifInvocation{{
				Arguments:           meta.InvocationArgs,
				ExecutionSuccessful: !bag.HasErrors(),
			}},
			Results: results,
		}},
	}
}

// sarifFixOf группирует правки по файлу, сохраняя порядок появления файлов.
func sarifFixOf(fs *source.FileSet, f *diag.Fix, mode PathMode) (sarifFix, bool) {
	out := sarifFix{Description: sarifMessage{Text: f.Title}}
	byURI := make(map[string]int)
	for _, e := range f.Edits {
		phys, ok := sarifLoc(fs, e.Span, mode)
		if !ok {
			return sarifFix{}, false
		}
		uri := phys.ArtifactLocation.URI
		idx, ok := byURI[uri]
		if !ok {
			idx = len(out.ArtifactChanges)
			byURI[uri] = idx
			out.ArtifactChanges = append(out.ArtifactChanges, sarifArtifactChange{ArtifactLocation: phys.ArtifactLocation})
		}
		out.ArtifactChanges[idx].Replacements = append(out.ArtifactChanges[idx].Replacements, sarifReplacement{
			DeletedRegion:   phys.Region,
			InsertedContent: sarifMessage{Text: e.NewText},
		})
	}
	return out, len(out.ArtifactChanges) > 0
}

// Sarif форматирует диагностики в SARIF формат (v2.1.0)
func Sarif(w io.Writer, bag *diag.Bag, fs *source.FileSet, meta SarifRunMeta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(buildSarif(bag, fs, meta))
}
