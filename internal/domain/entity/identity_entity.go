package entity

// Identity is the legal name record returned by the national registry for a
// national ID. FullName is always populated; the split fields may be empty
// when the upstream response only carries the concatenated form.
type Identity struct {
	GivenNames      string `json:"givenNames"`
	PaternalSurname string `json:"paternalSurname"`
	MaternalSurname string `json:"maternalSurname"`
	FullName        string `json:"fullName"`
	DocumentNumber  string `json:"documentNumber"`
}
