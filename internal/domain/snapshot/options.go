package snapshot

// ListOptions provides filtering options for listing snapshots.
type ListOptions struct {
	Status *Status
}

// Patch enumerates the mutable snapshot fields. A nil field is left untouched.
type Patch struct {
	Name   *string
	Notes  *string
	Status *Status
	URLs   *[]string
	Files  *[]FileLocation
	Tags   *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil &&
		p.Notes == nil &&
		p.Status == nil &&
		p.URLs == nil &&
		p.Files == nil &&
		p.Tags == nil
}

// Fields returns the names of the fields present in the patch.
func (p Patch) Fields() []string {
	var fields []string
	if p.Name != nil {
		fields = append(fields, "name")
	}
	if p.Notes != nil {
		fields = append(fields, "notes")
	}
	if p.Status != nil {
		fields = append(fields, "status")
	}
	if p.URLs != nil {
		fields = append(fields, "urls")
	}
	if p.Files != nil {
		fields = append(fields, "files")
	}
	if p.Tags != nil {
		fields = append(fields, "tags")
	}
	return fields
}
