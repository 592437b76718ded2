package dto

// AgentDto is the read shape for an agent.
type AgentDto struct {
	RegistrationNumber   string     `json:"registrationNumber"`
	Name                 string     `json:"name"`
	RegistrationCategory string     `json:"registrationCategory"`
	BrokerageTradeName   string     `json:"brokerageTradeName"`
	BrokeragePhone       string     `json:"brokeragePhone"`
	BrokerageEmail       string     `json:"brokerageEmail"`
	BrokerageAddress     AddressDto `json:"brokerageAddress"`
}

// AgentCreateDto is the creation shape; the registration number is
// client-supplied and immutable afterwards.
type AgentCreateDto struct {
	RegistrationNumber   string     `json:"registrationNumber" validate:"required"`
	Name                 string     `json:"name" validate:"required"`
	RegistrationCategory string     `json:"registrationCategory" validate:"required,oneof=Salesperson Broker"`
	BrokerageTradeName   string     `json:"brokerageTradeName" validate:"required"`
	BrokeragePhone       string     `json:"brokeragePhone" validate:"required"`
	BrokerageEmail       string     `json:"brokerageEmail" validate:"required,email"`
	BrokerageAddress     AddressDto `json:"brokerageAddress" validate:"required"`
}

// AgentUpdateDto covers the mutable fields of an agent; same PUT/PATCH
// semantics as PropertyUpdateDto.
type AgentUpdateDto struct {
	Name                 *string     `json:"name,omitempty"`
	RegistrationCategory *string     `json:"registrationCategory,omitempty" validate:"omitempty,oneof=Salesperson Broker"`
	BrokerageTradeName   *string     `json:"brokerageTradeName,omitempty"`
	BrokeragePhone       *string     `json:"brokeragePhone,omitempty"`
	BrokerageEmail       *string     `json:"brokerageEmail,omitempty" validate:"omitempty,email"`
	BrokerageAddress     *AddressDto `json:"brokerageAddress,omitempty"`
}
