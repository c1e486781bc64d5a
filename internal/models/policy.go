package models

// PolicyCategory groups bank form types by business area.
type PolicyCategory string

const (
	CategoryAccountOpening  PolicyCategory = "Account Opening"
	CategoryLoans           PolicyCategory = "Loans"
	CategoryCreditCards     PolicyCategory = "Credit Cards"
	CategoryInvestments     PolicyCategory = "Investments"
	CategoryKYCServices     PolicyCategory = "KYC & Services"
	CategoryInsurance       PolicyCategory = "Insurance"
	CategoryDigitalServices PolicyCategory = "Digital Services"
	CategoryNRIServices     PolicyCategory = "NRI Services"
)

// RequirementValue is one entry in a policy's requirements or eligibility
// mapping: a scalar string, a plain number, or a list of document names.
// Exactly one of the fields is set.
type RequirementValue struct {
	Text   string
	Number *float64
	Items  []string
}

// Requirement is a named requirement or eligibility criterion. Order matters
// for the rendered document, so policies carry slices rather than maps.
type Requirement struct {
	Name  string
	Value RequirementValue
}

// PolicyDocument describes the bank's rules for one form type. Created once
// by the corpus builder and immutable afterwards; policy changes regenerate
// the whole corpus.
type PolicyDocument struct {
	FormType     string
	Category     PolicyCategory
	Requirements []Requirement
	Eligibility  []Requirement
}

// ChunkMeta identifies where an indexed policy chunk came from.
type ChunkMeta struct {
	SourceFile string `json:"source_file"`
	FormType   string `json:"form_type"`
}

func Scalar(name, value string) Requirement {
	return Requirement{Name: name, Value: RequirementValue{Text: value}}
}

func Number(name string, value float64) Requirement {
	return Requirement{Name: name, Value: RequirementValue{Number: &value}}
}

func List(name string, items ...string) Requirement {
	return Requirement{Name: name, Value: RequirementValue{Items: items}}
}
