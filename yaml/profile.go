// Package yaml loads analytics layout profiles from YAML documents using
// gopkg.in/yaml.v3.
package yaml

import (
	"errors"
	"io"
	"regexp"

	"github.com/fwojciec/pastescout"
	"github.com/fwojciec/pastescout/everbee"
	"gopkg.in/yaml.v3"
)

// profileDoc is the YAML form of everbee.Profile. Sections left out of a
// document keep their default tables. Signature and tag columns are not
// configurable.
type profileDoc struct {
	RankKey    string       `yaml:"rank_key,omitempty"`
	Table      *boundaryDoc `yaml:"table,omitempty"`
	Labels     []labelDoc   `yaml:"labels,omitempty"`
	Noise      []markerDoc  `yaml:"noise,omitempty"`
	Trends     *boundaryDoc `yaml:"trends,omitempty"`
	Tags       *boundaryDoc `yaml:"tags,omitempty"`
	Details    *boundaryDoc `yaml:"details,omitempty"`
	DetailKeys []string     `yaml:"detail_keys,omitempty"`
}

type boundaryDoc struct {
	Anchors     []markerDoc `yaml:"anchors,omitempty"`
	Headers     []markerDoc `yaml:"headers,omitempty"`
	Titles      []markerDoc `yaml:"titles,omitempty"`
	SubHeaders  []markerDoc `yaml:"sub_headers,omitempty"`
	Ends        []markerDoc `yaml:"ends,omitempty"`
	Window      int         `yaml:"window,omitempty"`
	HeaderReach int         `yaml:"header_reach,omitempty"`
	Offset      int         `yaml:"offset,omitempty"`
}

// markerDoc sets exactly one of its fields.
type markerDoc struct {
	Exact    string `yaml:"exact,omitempty"`
	Fold     string `yaml:"fold,omitempty"`
	Contains string `yaml:"contains,omitempty"`
	Prefix   string `yaml:"prefix,omitempty"`
	Pattern  string `yaml:"pattern,omitempty"`
}

type labelDoc struct {
	Label     string `yaml:"label"`
	Key       string `yaml:"key"`
	Shape     string `yaml:"shape,omitempty"`
	Convert   string `yaml:"convert,omitempty"`
	Overwrite bool   `yaml:"overwrite,omitempty"`
}

// LoadProfile reads a profile from r, starting from the default profile
// and replacing every section the document sets. An empty document yields
// the default profile.
func LoadProfile(r io.Reader) (*everbee.Profile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc profileDoc
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pastescout.Errorf(pastescout.EINVALID, "decode profile: %v", err)
	}

	p := everbee.DefaultProfile()
	if doc.RankKey != "" {
		p.RankKey = doc.RankKey
	}
	if len(doc.DetailKeys) > 0 {
		p.DetailKeys = doc.DetailKeys
	}

	if len(doc.Labels) > 0 {
		labels := make([]pastescout.FieldSpec, 0, len(doc.Labels))
		for _, l := range doc.Labels {
			spec, err := l.spec()
			if err != nil {
				return nil, err
			}
			labels = append(labels, spec)
		}
		p.Labels = labels
	}

	if len(doc.Noise) > 0 {
		noise, err := markers(doc.Noise)
		if err != nil {
			return nil, err
		}
		p.Noise = noise
	}

	for _, s := range []struct {
		doc *boundaryDoc
		dst *pastescout.Boundary
	}{
		{doc.Table, &p.Table},
		{doc.Trends, &p.Trends},
		{doc.Tags, &p.Tags},
		{doc.Details, &p.Details},
	} {
		if s.doc == nil {
			continue
		}
		b, err := s.doc.boundary()
		if err != nil {
			return nil, err
		}
		*s.dst = b
	}

	return p, nil
}

// MarshalProfile encodes the configurable sections of p as YAML.
func MarshalProfile(p *everbee.Profile) ([]byte, error) {
	doc := profileDoc{
		RankKey:    p.RankKey,
		Table:      boundaryDocFrom(p.Table),
		Noise:      markerDocsFrom(p.Noise),
		Trends:     boundaryDocFrom(p.Trends),
		Tags:       boundaryDocFrom(p.Tags),
		Details:    boundaryDocFrom(p.Details),
		DetailKeys: p.DetailKeys,
	}
	for _, s := range p.Labels {
		l := labelDoc{Label: s.Label, Key: s.Key, Overwrite: s.Overwrite}
		if s.Shape != nil {
			l.Shape = s.Shape.String()
		}
		if s.Convert != pastescout.AsText {
			l.Convert = s.Convert.String()
		}
		doc.Labels = append(doc.Labels, l)
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, pastescout.Errorf(pastescout.EINTERNAL, "encode profile: %v", err)
	}
	return b, nil
}

func (l labelDoc) spec() (pastescout.FieldSpec, error) {
	if l.Label == "" || l.Key == "" {
		return pastescout.FieldSpec{}, pastescout.Errorf(pastescout.EINVALID, "label entry needs label and key")
	}
	conv, err := pastescout.ParseConverter(l.Convert)
	if err != nil {
		return pastescout.FieldSpec{}, err
	}
	spec := pastescout.FieldSpec{Label: l.Label, Key: l.Key, Convert: conv, Overwrite: l.Overwrite}
	if l.Shape != "" {
		re, err := regexp.Compile(l.Shape)
		if err != nil {
			return pastescout.FieldSpec{}, pastescout.Errorf(pastescout.EINVALID, "label %q: bad shape: %v", l.Label, err)
		}
		spec.Shape = re
	}
	return spec, nil
}

func (d *boundaryDoc) boundary() (pastescout.Boundary, error) {
	b := pastescout.Boundary{Window: d.Window, HeaderReach: d.HeaderReach, Offset: d.Offset}
	for _, s := range []struct {
		docs []markerDoc
		dst  *[]pastescout.Marker
	}{
		{d.Anchors, &b.Anchors},
		{d.Headers, &b.Headers},
		{d.Titles, &b.Titles},
		{d.SubHeaders, &b.SubHeaders},
		{d.Ends, &b.Ends},
	} {
		m, err := markers(s.docs)
		if err != nil {
			return pastescout.Boundary{}, err
		}
		*s.dst = m
	}
	return b, nil
}

func markers(docs []markerDoc) ([]pastescout.Marker, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]pastescout.Marker, 0, len(docs))
	for _, d := range docs {
		m, err := d.marker()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (d markerDoc) marker() (pastescout.Marker, error) {
	var set []pastescout.Marker
	if d.Exact != "" {
		set = append(set, pastescout.Exact(d.Exact))
	}
	if d.Fold != "" {
		set = append(set, pastescout.Fold(d.Fold))
	}
	if d.Contains != "" {
		set = append(set, pastescout.Contains(d.Contains))
	}
	if d.Prefix != "" {
		set = append(set, pastescout.Prefix(d.Prefix))
	}
	if d.Pattern != "" {
		re, err := regexp.Compile("(?i)" + d.Pattern)
		if err != nil {
			return pastescout.Marker{}, pastescout.Errorf(pastescout.EINVALID, "bad marker pattern %q: %v", d.Pattern, err)
		}
		set = append(set, pastescout.Marker{Kind: pastescout.MarkerPattern, Text: d.Pattern, Pattern: re})
	}
	if len(set) != 1 {
		return pastescout.Marker{}, pastescout.Errorf(pastescout.EINVALID, "marker must set exactly one of exact, fold, contains, prefix, pattern")
	}
	return set[0], nil
}

func boundaryDocFrom(b pastescout.Boundary) *boundaryDoc {
	return &boundaryDoc{
		Anchors:     markerDocsFrom(b.Anchors),
		Headers:     markerDocsFrom(b.Headers),
		Titles:      markerDocsFrom(b.Titles),
		SubHeaders:  markerDocsFrom(b.SubHeaders),
		Ends:        markerDocsFrom(b.Ends),
		Window:      b.Window,
		HeaderReach: b.HeaderReach,
		Offset:      b.Offset,
	}
}

func markerDocsFrom(ms []pastescout.Marker) []markerDoc {
	var docs []markerDoc
	for _, m := range ms {
		var d markerDoc
		switch m.Kind {
		case pastescout.MarkerFold:
			d.Fold = m.Text
		case pastescout.MarkerContains:
			d.Contains = m.Text
		case pastescout.MarkerPrefix:
			d.Prefix = m.Text
		case pastescout.MarkerPattern:
			d.Pattern = m.Text
		default:
			d.Exact = m.Text
		}
		docs = append(docs, d)
	}
	return docs
}
