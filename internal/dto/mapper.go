package dto

import (
	"time"

	"propertyhub-api/internal/model"
)

// The mapping layer owns every DTO <-> entity conversion. Server-owned fields
// (MLS, registrationNumber, dateListed, lastUpdate) are only ever set here,
// never copied from client input outside creation.

// AddressFromDto converts a wire address to the embedded entity form.
func AddressFromDto(d AddressDto) model.Address {
	return model.Address{
		StreetNumber: d.StreetNumber,
		StreetName:   d.StreetName,
		Unit:         d.Unit,
		City:         d.City,
		Province:     d.Province,
		PostalCode:   d.PostalCode,
		Country:      d.Country,
	}
}

// AddressToDto converts an embedded address to its wire form.
func AddressToDto(a model.Address) AddressDto {
	return AddressDto{
		StreetNumber: a.StreetNumber,
		StreetName:   a.StreetName,
		Unit:         a.Unit,
		City:         a.City,
		Province:     a.Province,
		PostalCode:   a.PostalCode,
		Country:      a.Country,
	}
}

// AddressesToDto converts a projection of embedded addresses.
func AddressesToDto(addresses []model.Address) []AddressDto {
	out := make([]AddressDto, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, AddressToDto(a))
	}
	return out
}

// FeatureFromDto converts a wire feature block to the embedded entity form.
func FeatureFromDto(d FeatureDto) model.Feature {
	return model.Feature{
		WalkScore:      cloneInt(d.WalkScore),
		TransitScore:   cloneInt(d.TransitScore),
		BikeScore:      cloneInt(d.BikeScore),
		EducationScore: cloneInt(d.EducationScore),
	}
}

// FeatureToDto converts an embedded feature block to its wire form.
func FeatureToDto(f model.Feature) FeatureDto {
	return FeatureDto{
		WalkScore:      cloneInt(f.WalkScore),
		TransitScore:   cloneInt(f.TransitScore),
		BikeScore:      cloneInt(f.BikeScore),
		EducationScore: cloneInt(f.EducationScore),
	}
}

// FeaturesToDto converts a projection of embedded feature blocks.
func FeaturesToDto(features []model.Feature) []FeatureDto {
	out := make([]FeatureDto, 0, len(features))
	for _, f := range features {
		out = append(out, FeatureToDto(f))
	}
	return out
}

// PropertyFromCreateDto builds a new entity from the creation shape and stamps
// the server-owned listing dates.
func PropertyFromCreateDto(d PropertyCreateDto) *model.Property {
	now := time.Now().UTC()
	p := &model.Property{
		MLS:                     d.MLS,
		Type:                    d.Type,
		Price:                   d.Price,
		Bedrooms:                d.Bedrooms,
		Bathrooms:               d.Bathrooms,
		Parkings:                d.Parkings,
		Size:                    d.Size,
		YearBuilt:               d.YearBuilt,
		Tax:                     d.Tax,
		Status:                  d.Status,
		Description:             d.Description,
		AgentRegistrationNumber: d.AgentRegistrationNumber,
		ImageUrls:               cloneStrings(d.ImageUrls),
		DateListed:              now,
		LastUpdate:              now,
	}
	if d.Address != nil {
		a := AddressFromDto(*d.Address)
		p.Address = &a
	}
	if d.Feature != nil {
		f := FeatureFromDto(*d.Feature)
		p.Feature = &f
	}
	return p
}

// PropertyToDto converts an entity to its read shape.
func PropertyToDto(p model.Property) PropertyDto {
	out := PropertyDto{
		MLS:                     p.MLS,
		Type:                    p.Type,
		Price:                   p.Price,
		Bedrooms:                p.Bedrooms,
		Bathrooms:               p.Bathrooms,
		Parkings:                p.Parkings,
		Size:                    p.Size,
		YearBuilt:               p.YearBuilt,
		Tax:                     p.Tax,
		Status:                  p.Status,
		Description:             p.Description,
		AgentRegistrationNumber: p.AgentRegistrationNumber,
		ImageUrls:               cloneStrings(p.ImageUrls),
		DateListed:              p.DateListed,
		LastUpdate:              p.LastUpdate,
	}
	if p.Address != nil {
		a := AddressToDto(*p.Address)
		out.Address = &a
	}
	if p.Feature != nil {
		f := FeatureToDto(*p.Feature)
		out.Feature = &f
	}
	return out
}

// PropertiesToDto converts a result set to read shapes.
func PropertiesToDto(properties []model.Property) []PropertyDto {
	out := make([]PropertyDto, 0, len(properties))
	for _, p := range properties {
		out = append(out, PropertyToDto(p))
	}
	return out
}

// PropertyToUpdateDto populates the update shape from an entity. PATCH uses
// this as the JSON-Patch target so untouched fields round-trip unchanged.
func PropertyToUpdateDto(p model.Property) PropertyUpdateDto {
	d := PropertyUpdateDto{
		Type:                    &p.Type,
		Price:                   &p.Price,
		Bedrooms:                &p.Bedrooms,
		Bathrooms:               &p.Bathrooms,
		Parkings:                &p.Parkings,
		Size:                    &p.Size,
		YearBuilt:               &p.YearBuilt,
		Tax:                     &p.Tax,
		Status:                  &p.Status,
		Description:             &p.Description,
		AgentRegistrationNumber: &p.AgentRegistrationNumber,
		ImageUrls:               cloneStrings(p.ImageUrls),
	}
	if p.Address != nil {
		a := AddressToDto(*p.Address)
		d.Address = &a
	}
	if p.Feature != nil {
		f := FeatureToDto(*p.Feature)
		d.Feature = &f
	}
	return d
}

// OverwriteProperty applies PUT semantics: every mutable field is replaced
// with the DTO value, fields absent from the DTO reset to their zero value.
// The key and dateListed are untouched; lastUpdate is stamped.
func OverwriteProperty(p *model.Property, d PropertyUpdateDto) {
	p.Type = strOrZero(d.Type)
	p.Price = floatOrZero(d.Price)
	p.Bedrooms = intOrZero(d.Bedrooms)
	p.Bathrooms = intOrZero(d.Bathrooms)
	p.Parkings = intOrZero(d.Parkings)
	p.Size = intOrZero(d.Size)
	p.YearBuilt = intOrZero(d.YearBuilt)
	p.Tax = floatOrZero(d.Tax)
	p.Status = strOrZero(d.Status)
	p.Description = strOrZero(d.Description)
	p.AgentRegistrationNumber = strOrZero(d.AgentRegistrationNumber)
	p.ImageUrls = cloneStrings(d.ImageUrls)
	p.Address = nil
	if d.Address != nil {
		a := AddressFromDto(*d.Address)
		p.Address = &a
	}
	p.Feature = nil
	if d.Feature != nil {
		f := FeatureFromDto(*d.Feature)
		p.Feature = &f
	}
	p.LastUpdate = time.Now().UTC()
}

// MergeProperty applies PATCH semantics: only fields present in the DTO are
// copied, everything else keeps its current value. lastUpdate is stamped.
func MergeProperty(p *model.Property, d PropertyUpdateDto) {
	if d.Type != nil {
		p.Type = *d.Type
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Bedrooms != nil {
		p.Bedrooms = *d.Bedrooms
	}
	if d.Bathrooms != nil {
		p.Bathrooms = *d.Bathrooms
	}
	if d.Parkings != nil {
		p.Parkings = *d.Parkings
	}
	if d.Size != nil {
		p.Size = *d.Size
	}
	if d.YearBuilt != nil {
		p.YearBuilt = *d.YearBuilt
	}
	if d.Tax != nil {
		p.Tax = *d.Tax
	}
	if d.Status != nil {
		p.Status = *d.Status
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.AgentRegistrationNumber != nil {
		p.AgentRegistrationNumber = *d.AgentRegistrationNumber
	}
	if d.ImageUrls != nil {
		p.ImageUrls = cloneStrings(d.ImageUrls)
	}
	if d.Address != nil {
		a := AddressFromDto(*d.Address)
		p.Address = &a
	}
	if d.Feature != nil {
		f := FeatureFromDto(*d.Feature)
		p.Feature = &f
	}
	p.LastUpdate = time.Now().UTC()
}

// AgentFromCreateDto builds a new agent entity from the creation shape.
func AgentFromCreateDto(d AgentCreateDto) *model.Agent {
	return &model.Agent{
		RegistrationNumber:   d.RegistrationNumber,
		Name:                 d.Name,
		RegistrationCategory: d.RegistrationCategory,
		BrokerageTradeName:   d.BrokerageTradeName,
		BrokeragePhone:       d.BrokeragePhone,
		BrokerageEmail:       d.BrokerageEmail,
		BrokerageAddress:     AddressFromDto(d.BrokerageAddress),
	}
}

// AgentToDto converts an agent entity to its read shape.
func AgentToDto(a model.Agent) AgentDto {
	return AgentDto{
		RegistrationNumber:   a.RegistrationNumber,
		Name:                 a.Name,
		RegistrationCategory: a.RegistrationCategory,
		BrokerageTradeName:   a.BrokerageTradeName,
		BrokeragePhone:       a.BrokeragePhone,
		BrokerageEmail:       a.BrokerageEmail,
		BrokerageAddress:     AddressToDto(a.BrokerageAddress),
	}
}

// AgentsToDto converts a result set of agents.
func AgentsToDto(agents []model.Agent) []AgentDto {
	out := make([]AgentDto, 0, len(agents))
	for _, a := range agents {
		out = append(out, AgentToDto(a))
	}
	return out
}

// AgentToUpdateDto populates the update shape from an entity for PATCH.
func AgentToUpdateDto(a model.Agent) AgentUpdateDto {
	addr := AddressToDto(a.BrokerageAddress)
	return AgentUpdateDto{
		Name:                 &a.Name,
		RegistrationCategory: &a.RegistrationCategory,
		BrokerageTradeName:   &a.BrokerageTradeName,
		BrokeragePhone:       &a.BrokeragePhone,
		BrokerageEmail:       &a.BrokerageEmail,
		BrokerageAddress:     &addr,
	}
}

// OverwriteAgent applies PUT semantics to an agent; the registration number
// is untouched.
func OverwriteAgent(a *model.Agent, d AgentUpdateDto) {
	a.Name = strOrZero(d.Name)
	a.RegistrationCategory = strOrZero(d.RegistrationCategory)
	a.BrokerageTradeName = strOrZero(d.BrokerageTradeName)
	a.BrokeragePhone = strOrZero(d.BrokeragePhone)
	a.BrokerageEmail = strOrZero(d.BrokerageEmail)
	a.BrokerageAddress = model.Address{}
	if d.BrokerageAddress != nil {
		a.BrokerageAddress = AddressFromDto(*d.BrokerageAddress)
	}
}

// MergeAgent applies PATCH semantics to an agent.
func MergeAgent(a *model.Agent, d AgentUpdateDto) {
	if d.Name != nil {
		a.Name = *d.Name
	}
	if d.RegistrationCategory != nil {
		a.RegistrationCategory = *d.RegistrationCategory
	}
	if d.BrokerageTradeName != nil {
		a.BrokerageTradeName = *d.BrokerageTradeName
	}
	if d.BrokeragePhone != nil {
		a.BrokeragePhone = *d.BrokeragePhone
	}
	if d.BrokerageEmail != nil {
		a.BrokerageEmail = *d.BrokerageEmail
	}
	if d.BrokerageAddress != nil {
		a.BrokerageAddress = AddressFromDto(*d.BrokerageAddress)
	}
}

// ApplyAddressUpdate copies present fields from the patched update shape onto
// an address, leaving the rest unchanged.
func ApplyAddressUpdate(a *model.Address, d AddressUpdateDto) {
	if d.StreetNumber != nil {
		a.StreetNumber = *d.StreetNumber
	}
	if d.StreetName != nil {
		a.StreetName = *d.StreetName
	}
	if d.Unit != nil {
		a.Unit = *d.Unit
	}
	if d.City != nil {
		a.City = *d.City
	}
	if d.Province != nil {
		a.Province = *d.Province
	}
	if d.PostalCode != nil {
		a.PostalCode = *d.PostalCode
	}
	if d.Country != nil {
		a.Country = *d.Country
	}
}

// AddressToUpdateDto populates the patch target from an embedded address.
func AddressToUpdateDto(a model.Address) AddressUpdateDto {
	return AddressUpdateDto{
		StreetNumber: &a.StreetNumber,
		StreetName:   &a.StreetName,
		Unit:         &a.Unit,
		City:         &a.City,
		Province:     &a.Province,
		PostalCode:   &a.PostalCode,
		Country:      &a.Country,
	}
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func strOrZero(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func intOrZero(p *int) int {
	if p != nil {
		return *p
	}
	return 0
}

func floatOrZero(p *float64) float64 {
	if p != nil {
		return *p
	}
	return 0
}
