package screening

import (
	"errors"
	"fmt"
)

type RiskTier string

const (
	RiskHigh     RiskTier = "High Risk"
	RiskModerate RiskTier = "Moderate Risk"
	RiskLow      RiskTier = "Low Risk"
)

type Label struct {
	Code string
	Name string
	Risk RiskTier
}

// LabelCount is the number of lesion categories the model can output. The
// taxonomy order is positional and must match the model output order.
const LabelCount = 7

var taxonomy = [LabelCount]Label{
	{Code: "akiec", Name: "Actinic Keratosis", Risk: RiskHigh},
	{Code: "bcc", Name: "Basal Cell Carcinoma", Risk: RiskHigh},
	{Code: "bkl", Name: "Benign Keratosis", Risk: RiskModerate},
	{Code: "df", Name: "Dermatofibroma", Risk: RiskModerate},
	{Code: "mel", Name: "Melanoma", Risk: RiskHigh},
	{Code: "nv", Name: "Melanocytic Nevi", Risk: RiskLow},
	{Code: "vasc", Name: "Vascular Lesion", Risk: RiskModerate},
}

var ErrUnknownLabelIndex = errors.New("unknown label index")

func Describe(idx int) (Label, error) {
	if idx < 0 || idx >= LabelCount {
		return Label{}, fmt.Errorf("%w: %d", ErrUnknownLabelIndex, idx)
	}
	return taxonomy[idx], nil
}

func Labels() []Label {
	out := make([]Label, LabelCount)
	copy(out, taxonomy[:])
	return out
}
