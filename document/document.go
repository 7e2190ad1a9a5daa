/*
Package document reads and writes path project documents.

A project document is a JSON object with three members: the project
configuration, the control points, and the version of the application which
wrote it.

	{ "config": { "algorithm": "cubic-spline", ... },
	  "points": [ { "x": 0, "y": 0, "flags": {}, "handles": [...], "reverse": false, "layers": [0] } ],
	  "version": "0.1.0" }

Documents written by a different version are loaded only after the caller
confirms.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Genius6942/pathgen/trajectory"
	"github.com/Genius6942/pathgen/waypoint"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'document'
func tracer() tracing.Trace {
	return tracing.Select("document")
}

// Version is the document version written by this package.
const Version = "0.1.0"

var (
	// ErrMalformedDocument indicates invalid JSON or a missing document member.
	ErrMalformedDocument = errors.New("invalid file")
	// ErrVersionDeclined indicates a version mismatch the caller did not accept.
	ErrVersionDeclined = errors.New("document version declined")
)

// VersionMismatch details a declined document version.
type VersionMismatch struct {
	Found, Expected string
}

func (vm *VersionMismatch) Error() string {
	return fmt.Sprintf("document has version %s, expected %s", vm.Found, vm.Expected)
}

// Unwrap makes a VersionMismatch match ErrVersionDeclined.
func (vm *VersionMismatch) Unwrap() error {
	return ErrVersionDeclined
}

// Document is a path project.
type Document struct {
	Config  trajectory.Config `json:"config"`
	Points  []waypoint.Export `json:"points"`
	Version string            `json:"version"`
}

// New creates a document of the current version.
func New(cfg trajectory.Config, points []waypoint.ControlPoint) *Document {
	return &Document{
		Config:  cfg,
		Points:  waypoint.ExportAll(points),
		Version: Version,
	}
}

// ControlPoints converts the points of doc to control points.
func (doc *Document) ControlPoints() []waypoint.ControlPoint {
	return waypoint.ImportAll(doc.Points)
}

// Encode writes doc as indented JSON.
func Encode(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Decode reads a document. A document lacking any of its members, or with a
// null member, is malformed. Decode does not check the version.
func Decode(r io.Reader) (*Document, error) {
	var members map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&members); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	for _, name := range []string{"config", "points", "version"} {
		if m, ok := members[name]; !ok || string(m) == "null" {
			return nil, fmt.Errorf("%w (no %s)", ErrMalformedDocument, name)
		}
	}
	doc := &Document{}
	if err := json.Unmarshal(members["config"], &doc.Config); err != nil {
		return nil, fmt.Errorf("%w: config: %v", ErrMalformedDocument, err)
	}
	if err := json.Unmarshal(members["points"], &doc.Points); err != nil {
		return nil, fmt.Errorf("%w: points: %v", ErrMalformedDocument, err)
	}
	if err := json.Unmarshal(members["version"], &doc.Version); err != nil {
		return nil, fmt.Errorf("%w: version: %v", ErrMalformedDocument, err)
	}
	if doc.Version == "" {
		return nil, fmt.Errorf("%w (no version)", ErrMalformedDocument)
	}
	return doc, nil
}

// Confirm is asked whether to accept a document of a different version.
type Confirm func(found, expected string) bool

// Load reads a document and checks its version. If the version differs from
// Version, confirm decides whether to continue; a nil confirm declines. A
// declined document results in an error wrapping a *VersionMismatch.
//
// Load returns the project settings and control points of the document. The
// configuration is normalized.
func Load(r io.Reader, confirm Confirm) (trajectory.Config, []waypoint.ControlPoint, error) {
	doc, err := Decode(r)
	if err != nil {
		return trajectory.Config{}, nil, err
	}
	if doc.Version != Version {
		tracer().Infof("document version %s differs from %s", doc.Version, Version)
		if confirm == nil || !confirm(doc.Version, Version) {
			return trajectory.Config{}, nil, &VersionMismatch{Found: doc.Version, Expected: Version}
		}
	}
	points := doc.ControlPoints()
	tracer().Debugf("loaded %d control points, algorithm %s", len(points), doc.Config.Algorithm)
	return doc.Config.Normalized(), points, nil
}
