package model

// Agent is a real-estate agent keyed by the immutable registration number.
type Agent struct {
	RegistrationNumber   string  `json:"registrationNumber" bson:"_id"`
	Name                 string  `json:"name" bson:"name"`
	RegistrationCategory string  `json:"registrationCategory" bson:"registrationCategory"`
	BrokerageTradeName   string  `json:"brokerageTradeName" bson:"brokerageTradeName"`
	BrokeragePhone       string  `json:"brokeragePhone" bson:"brokeragePhone"`
	BrokerageEmail       string  `json:"brokerageEmail" bson:"brokerageEmail"`
	BrokerageAddress     Address `json:"brokerageAddress" bson:"brokerageAddress"`
}
