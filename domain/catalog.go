package domain

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
)

// DefaultSpecialties is the catalog served by the reference deployment of the gateway.
// Every tag is also the name of the workspace answering for that specialty.
var DefaultSpecialties = []string{
	"general-practice",
	"neurology",
	"cardiology",
	"dermatology",
	"endocrinology",
	"gastroenterology",
	"hematology-and-oncology",
	"internal-medicine",
	"obstetrics-and-gynaecology",
	"general-surgery",
	"psychiatry",
	"oncology",
	"paediatrics",
	"emergency-medicine",
	"nephrology",
	"urology",
	"medication",
	"clinical-pathology",
	"histopathology",
	"orthopaedics",
	"rheumatology",
	"geriatrics",
	"critical-care",
	"sexual-medicine",
	"spine-surgery",
	"colorectal-surgery",
	"nursing",
	"ophthalmology",
	"pulmonary-and-critical-care",
}

// SpecialtyCatalog is the ordered set of specialty tags recognised by a deployment.
// It is immutable once built.
type SpecialtyCatalog struct {
	tags  []string
	index map[string]struct{}
}

// NewSpecialtyCatalog keeps the first occurrence of every non-blank tag.
func NewSpecialtyCatalog(tags ...string) SpecialtyCatalog {
	cleaned := lo.Uniq(lo.FilterMap(tags, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	}))
	index := make(map[string]struct{}, len(cleaned))
	for _, tag := range cleaned {
		index[tag] = struct{}{}
	}
	return SpecialtyCatalog{tags: cleaned, index: index}
}

func DefaultCatalog() SpecialtyCatalog {
	return NewSpecialtyCatalog(DefaultSpecialties...)
}

func (c SpecialtyCatalog) Contains(tag string) bool {
	_, ok := c.index[tag]
	return ok
}

// Tags returns a copy, callers cannot mutate the catalog.
func (c SpecialtyCatalog) Tags() []string {
	return append([]string(nil), c.tags...)
}

func (c SpecialtyCatalog) Len() int {
	return len(c.tags)
}

// JSON renders the catalog as a JSON array, the form embedded in classifier prompts.
func (c SpecialtyCatalog) JSON() string {
	bytes, err := json.Marshal(c.Tags())
	if err != nil {
		return "[]"
	}
	return string(bytes)
}
