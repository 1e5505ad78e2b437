// Package dump converts parsed LDIF records into a document that can be
// serialized as JSON or YAML for inspection.
package dump

// Encoding names how a rendered value is represented.
type Encoding string

const (
	// EncodingText is a value rendered as UTF-8 text.
	EncodingText Encoding = ""

	// EncodingBase64 is a binary value rendered as standard base64.
	EncodingBase64 Encoding = "base64"
)

// Document is the serializable form of one parsed LDIF file.
type Document struct {
	Source  string   `json:"source,omitempty"  yaml:"source,omitempty"`
	Version *int     `json:"version,omitempty" yaml:"version,omitempty"`
	Records []Record `json:"records"           yaml:"records"`
}

// Record is a content or change record.
type Record struct {
	DN   string `json:"dn"             yaml:"dn"`
	Line int    `json:"line,omitempty" yaml:"line,omitempty"`

	// Depth is the number of RDNs in DN; zero for the root DN.
	Depth int `json:"depth,omitempty" yaml:"depth,omitempty"`

	// ChangeType is empty for content records.
	ChangeType string    `json:"changetype,omitempty" yaml:"changetype,omitempty"`
	Controls   []Control `json:"controls,omitempty"   yaml:"controls,omitempty"`

	Attributes    []Attribute    `json:"attributes,omitempty"    yaml:"attributes,omitempty"`
	Modifications []Modification `json:"modifications,omitempty" yaml:"modifications,omitempty"`

	NewRDN       string  `json:"newrdn,omitempty"       yaml:"newrdn,omitempty"`
	DeleteOldRDN *bool   `json:"deleteoldrdn,omitempty" yaml:"deleteoldrdn,omitempty"`
	NewSuperior  *string `json:"newsuperior,omitempty"  yaml:"newsuperior,omitempty"`
}

// Value is a rendered attribute or control value.
type Value struct {
	Value    string   `json:"value,omitempty"    yaml:"value,omitempty"`
	Encoding Encoding `json:"encoding,omitempty" yaml:"encoding,omitempty"`

	// URL is set for values given by reference. Value is empty unless the
	// reference was resolved.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Detected labels the format of resolved URL content, e.g. "pem" or
	// "binary".
	Detected string `json:"detected,omitempty" yaml:"detected,omitempty"`
}

// Attribute is an attribute description with one value.
type Attribute struct {
	Name  string `json:"name" yaml:"name"`
	Value `yaml:",inline"`
}

// Control is an LDAP control of a change record.
type Control struct {
	OID      string `json:"oid"                yaml:"oid"`
	Critical *bool  `json:"critical,omitempty" yaml:"critical,omitempty"`
	Value    *Value `json:"value,omitempty"    yaml:"value,omitempty"`
}

// Modification is one mod-spec of a modify record.
type Modification struct {
	Op        string  `json:"op"               yaml:"op"`
	Attribute string  `json:"attribute"        yaml:"attribute"`
	Values    []Value `json:"values,omitempty" yaml:"values,omitempty"`
}
