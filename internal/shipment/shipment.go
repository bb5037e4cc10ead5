// Package shipment holds the shipment value types and the analyzer that derives
// aggregate metrics from a shipment's packages.
package shipment

// Address identifies a location by its ISO 3166-1 alpha-2 country code.
type Address struct {
	Country string `json:"country" yaml:"country" validate:"required,len=2,alpha"`
}

// Dimensions are package measurements in centimetres.
type Dimensions struct {
	Length float64 `json:"length" yaml:"length" validate:"gte=0.1"`
	Width  float64 `json:"width" yaml:"width" validate:"gte=0.1"`
	Height float64 `json:"height" yaml:"height" validate:"gte=0.1"`
}

// Volume returns length × width × height in cubic centimetres.
func (d Dimensions) Volume() float64 {
	return d.Length * d.Width * d.Height
}

// Package is a single parcel of a shipment. Weight is in kilograms.
//
// Quantity is carried through but is not multiplied into any aggregate.
type Package struct {
	ID         string     `json:"id" yaml:"id" validate:"required"`
	Quantity   int        `json:"quantity" yaml:"quantity" validate:"gte=1"`
	Weight     float64    `json:"weight" yaml:"weight" validate:"gte=0.1"`
	Dimensions Dimensions `json:"dimensions" yaml:"dimensions"`
}

// Shipment is a request-scoped description of what is sent and where.
type Shipment struct {
	OriginAddress      Address   `json:"originAddress" yaml:"origin_address"`
	DestinationAddress Address   `json:"destinationAddress" yaml:"destination_address"`
	Packages           []Package `json:"packages" yaml:"packages" validate:"dive"`
}
