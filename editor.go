package main

import (
	"strconv"
	"strings"
)

// Editor operations over a LayoutConfig. Every operation is a pure function:
// it returns a fresh configuration value and never mutates or aliases its
// receiver, so callers can keep old snapshots around (undo, live preview
// diffing) without surprises. Unknown section ids and out-of-range indices
// are silent no-ops; the editing surface only ever derives targets from the
// configuration it just rendered, so a miss is not an error.

// SectionPatch carries a shallow partial update for a section. Nil pointers
// leave the corresponding value untouched.
type SectionPatch struct {
	Title         *string `json:"title,omitempty"`
	Visible       *bool   `json:"visible,omitempty"`
	DataSourceKey *string `json:"data_source_key,omitempty"`
}

// FieldPatch carries a shallow partial update for a field or column.
// For Style and FormatString an explicit empty string clears the value
// back to null.
type FieldPatch struct {
	Key          *string `json:"key,omitempty"`
	Label        *string `json:"label,omitempty"`
	Type         *string `json:"type,omitempty"`
	Visible      *bool   `json:"visible,omitempty"`
	Style        *string `json:"style,omitempty"`
	FormatString *string `json:"format_string,omitempty"`
}

// AddSection appends a new section with a fresh unique id derived from the
// title. An empty title creates nothing and returns the config unchanged.
// The data source key only applies to table sections and defaults to
// "line_items" when unset.
func (c LayoutConfig) AddSection(title, sectionType, dataSourceKey string) (LayoutConfig, Section) {
	if title == "" {
		return c.clone(), Section{}
	}

	section := Section{
		ID:      uniqueSectionID(c.Sections, title),
		Title:   title,
		Type:    sectionType,
		Visible: true,
		Fields:  []Field{},
		Columns: []Column{},
	}
	if sectionType == SectionTypeTable {
		if dataSourceKey == "" {
			dataSourceKey = DefaultDataSourceKey
		}
		section.DataSourceKey = dataSourceKey
	}

	next := c.clone()
	next.Sections = append(next.Sections, section)
	return next, section
}

// ReorderSections moves the section identified by fromID to the position
// toID currently occupies, shifting the sections in between by one slot.
func (c LayoutConfig) ReorderSections(fromID, toID string) LayoutConfig {
	next := c.clone()
	from, to := -1, -1
	for i, s := range next.Sections {
		if s.ID == fromID {
			from = i
		}
		if s.ID == toID {
			to = i
		}
	}
	if from < 0 || to < 0 || from == to {
		return next
	}
	next.Sections = moveElement(next.Sections, from, to)
	return next
}

// UpdateSection shallow-merges the patch into the matching section.
func (c LayoutConfig) UpdateSection(id string, patch SectionPatch) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID != id {
			continue
		}
		if patch.Title != nil {
			// Editing the title never regenerates the id.
			next.Sections[i].Title = *patch.Title
		}
		if patch.Visible != nil {
			next.Sections[i].Visible = *patch.Visible
		}
		if patch.DataSourceKey != nil {
			next.Sections[i].DataSourceKey = *patch.DataSourceKey
		}
		break
	}
	return next
}

// DeleteSection removes the section. Sibling ids are left alone; new ids are
// always computed against the sections present at creation time.
func (c LayoutConfig) DeleteSection(id string) LayoutConfig {
	next := c.clone()
	for i, s := range next.Sections {
		if s.ID == id {
			next.Sections = append(next.Sections[:i], next.Sections[i+1:]...)
			break
		}
	}
	return next
}

// ToggleSectionVisible flips a section's visibility.
func (c LayoutConfig) ToggleSectionVisible(id string) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID == id {
			next.Sections[i].Visible = !next.Sections[i].Visible
			break
		}
	}
	return next
}

// AddField appends a field to the section's field list.
func (c LayoutConfig) AddField(sectionID string, field Field) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID == sectionID {
			next.Sections[i].Fields = append(next.Sections[i].Fields, field)
			break
		}
	}
	return next
}

// AddColumn appends a column to the section's column list.
func (c LayoutConfig) AddColumn(sectionID string, column Column) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID == sectionID {
			next.Sections[i].Columns = append(next.Sections[i].Columns, column)
			break
		}
	}
	return next
}

// AddFieldFromSegment builds a field from a segment mapping: the mapping key
// becomes the lookup key, the description (or the key when the description
// is blank) becomes the label, and the display type is inferred from the key.
func (c LayoutConfig) AddFieldFromSegment(sectionID string, m SegmentMapping) LayoutConfig {
	return c.AddField(sectionID, Field{
		Key:     m.Key,
		Label:   segmentLabel(m),
		Type:    InferDisplayType(m.Key),
		Visible: true,
	})
}

// AddColumnFromSegment is the table-section counterpart of AddFieldFromSegment.
func (c LayoutConfig) AddColumnFromSegment(sectionID string, m SegmentMapping) LayoutConfig {
	return c.AddColumn(sectionID, Column{
		Key:     m.Key,
		Label:   segmentLabel(m),
		Type:    InferDisplayType(m.Key),
		Visible: true,
	})
}

// UpdateField shallow-merges the patch into the field at index.
func (c LayoutConfig) UpdateField(sectionID string, index int, patch FieldPatch) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID != sectionID {
			continue
		}
		if index < 0 || index >= len(next.Sections[i].Fields) {
			break
		}
		f := &next.Sections[i].Fields[index]
		if patch.Key != nil {
			f.Key = *patch.Key
		}
		if patch.Label != nil {
			f.Label = *patch.Label
		}
		if patch.Type != nil {
			f.Type = *patch.Type
		}
		if patch.Visible != nil {
			f.Visible = *patch.Visible
		}
		if patch.Style != nil {
			f.Style = nullableString(*patch.Style)
		}
		if patch.FormatString != nil {
			f.FormatString = nullableString(*patch.FormatString)
		}
		break
	}
	return next
}

// UpdateColumn shallow-merges the patch into the column at index. Style and
// FormatString do not apply to columns and are ignored.
func (c LayoutConfig) UpdateColumn(sectionID string, index int, patch FieldPatch) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID != sectionID {
			continue
		}
		if index < 0 || index >= len(next.Sections[i].Columns) {
			break
		}
		col := &next.Sections[i].Columns[index]
		if patch.Key != nil {
			col.Key = *patch.Key
		}
		if patch.Label != nil {
			col.Label = *patch.Label
		}
		if patch.Type != nil {
			col.Type = *patch.Type
		}
		if patch.Visible != nil {
			col.Visible = *patch.Visible
		}
		break
	}
	return next
}

// DeleteField removes the field at index; later fields shift down by one.
func (c LayoutConfig) DeleteField(sectionID string, index int) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID != sectionID {
			continue
		}
		if index >= 0 && index < len(next.Sections[i].Fields) {
			next.Sections[i].Fields = append(next.Sections[i].Fields[:index], next.Sections[i].Fields[index+1:]...)
		}
		break
	}
	return next
}

// DeleteColumn removes the column at index; later columns shift down by one.
func (c LayoutConfig) DeleteColumn(sectionID string, index int) LayoutConfig {
	next := c.clone()
	for i := range next.Sections {
		if next.Sections[i].ID != sectionID {
			continue
		}
		if index >= 0 && index < len(next.Sections[i].Columns) {
			next.Sections[i].Columns = append(next.Sections[i].Columns[:index], next.Sections[i].Columns[index+1:]...)
		}
		break
	}
	return next
}

// ToggleFieldVisible flips a field's visibility.
func (c LayoutConfig) ToggleFieldVisible(sectionID string, index int) LayoutConfig {
	visible := true
	if s := c.findSection(sectionID); s != nil && index >= 0 && index < len(s.Fields) {
		visible = !s.Fields[index].Visible
	}
	return c.UpdateField(sectionID, index, FieldPatch{Visible: &visible})
}

// ToggleColumnVisible flips a column's visibility.
func (c LayoutConfig) ToggleColumnVisible(sectionID string, index int) LayoutConfig {
	visible := true
	if s := c.findSection(sectionID); s != nil && index >= 0 && index < len(s.Columns) {
		visible = !s.Columns[index].Visible
	}
	return c.UpdateColumn(sectionID, index, FieldPatch{Visible: &visible})
}

// ToggleFieldBold flips a field's style between bold and null. Applying it
// twice returns the original style.
func (c LayoutConfig) ToggleFieldBold(sectionID string, index int) LayoutConfig {
	style := StyleBold
	if s := c.findSection(sectionID); s != nil && index >= 0 && index < len(s.Fields) {
		if f := s.Fields[index]; f.Style != nil && *f.Style == StyleBold {
			style = ""
		}
	}
	return c.UpdateField(sectionID, index, FieldPatch{Style: &style})
}

// HasKey reports whether the section already uses the key, in whichever list
// matches its type. The segment picker disables mappings for used keys; this
// is a UI convenience, not a model-level constraint.
func (s Section) HasKey(key string) bool {
	if s.Type == SectionTypeTable {
		for _, col := range s.Columns {
			if col.Key == key {
				return true
			}
		}
		return false
	}
	for _, f := range s.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

func (c LayoutConfig) findSection(id string) *Section {
	for i := range c.Sections {
		if c.Sections[i].ID == id {
			return &c.Sections[i]
		}
	}
	return nil
}

// clone deep-copies the configuration so edits never leak into snapshots
// held by callers.
func (c LayoutConfig) clone() LayoutConfig {
	next := c
	next.Sections = make([]Section, len(c.Sections))
	for i, s := range c.Sections {
		cs := s
		cs.Fields = make([]Field, len(s.Fields))
		for j, f := range s.Fields {
			cf := f
			cf.Style = copyStringPtr(f.Style)
			cf.FormatString = copyStringPtr(f.FormatString)
			cs.Fields[j] = cf
		}
		cs.Columns = make([]Column, len(s.Columns))
		copy(cs.Columns, s.Columns)
		next.Sections[i] = cs
	}
	return next
}

// moveElement relocates one element of a list from index from to index to,
// preserving the relative order of everything else. Out-of-range indices
// return an unchanged copy. The drag-and-drop and keyboard reorder adapters
// both funnel into this.
func moveElement[T any](list []T, from, to int) []T {
	out := make([]T, len(list))
	copy(out, list)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	elem := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{elem}, out[to:]...)...)
	return out
}

// sectionSlug normalizes a title into an id: lowercase, runs of
// non-alphanumerics collapsed to a single underscore, trimmed.
func sectionSlug(title string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "section"
	}
	return slug
}

// uniqueSectionID appends a numeric suffix until the slug is unique among
// the current siblings: base, base_1, base_2, ...
func uniqueSectionID(sections []Section, title string) string {
	used := make(map[string]bool, len(sections))
	for _, s := range sections {
		used[s.ID] = true
	}

	base := sectionSlug(title)
	id := base
	for n := 1; used[id]; n++ {
		id = base + "_" + strconv.Itoa(n)
	}
	return id
}

func segmentLabel(m SegmentMapping) string {
	if m.Description != "" {
		return m.Description
	}
	return m.Key
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func copyStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
