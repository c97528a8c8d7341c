package allocation

import "time"

// PricingSnapshot is the itemized price breakdown frozen onto an allocation
// at creation time. All money amounts are integer cents. The snapshot is
// persisted verbatim and never recomputed once checkout begins.
//
// ProcessorFeeEstimate is cosmetic (admin display only); it is never charged
// and is excluded from the Total.
type PricingSnapshot struct {
	BasePricePerLb          int64     `json:"basePricePerLb"`
	ProcessingFeePerLb      int64     `json:"processingFeePerLb"`
	LogisticsSurchargePerLb int64     `json:"logisticsSurchargePerLb"`
	EstimatedWeightLbs      float64   `json:"estimatedWeightLbs"`
	Subtotal                int64     `json:"subtotal"`
	ProcessingTotal         int64     `json:"processingTotal"`
	LogisticsTotal          int64     `json:"logisticsTotal"`
	TaxRate                 float64   `json:"taxRate"`
	TaxAmount               int64     `json:"taxAmount"`
	Total                   int64     `json:"total"`
	ProcessorFeeEstimate    int64     `json:"processorFeeEstimate"`
	CreatedAt               time.Time `json:"createdAt"`
}

// IsZero reports whether the snapshot has not been set. Used to enforce the
// write-once invariant on the aggregate.
func (s PricingSnapshot) IsZero() bool {
	return s == PricingSnapshot{}
}

// ShippingAddress is the buyer-supplied delivery address. It is stored as an
// opaque JSON blob; only the ZIP participates in domain logic (geo matching).
type ShippingAddress struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Instructions string `json:"instructions,omitempty"`
}
