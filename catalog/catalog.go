// Package catalog holds the static field schemas for the service and
// equipment product kinds. The registry drives both form rendering and
// server-side validation so kind checks do not leak into business logic.
package catalog

import "digicoop-backend/models"

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldSelect   FieldType = "select"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldCheckbox FieldType = "checkbox"
)

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Field struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required"`
	Options     []Option  `json:"options,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

type ProductTypeConfig struct {
	Type             string   `json:"type"`
	Label            string   `json:"label"`
	Description      string   `json:"description"`
	Fields           []Field  `json:"fields"`
	PriceUnitOptions []Option `json:"price_unit_options"`
}

var productTypes = []ProductTypeConfig{
	{
		Type:        models.KindService,
		Label:       "Service Agricole",
		Description: "Services agricoles (labour, plantation, récolte, conseil, etc.)",
		Fields: []Field{
			{
				Name: "service_category", Label: "Catégorie de service", Type: FieldSelect, Required: true,
				Options: []Option{
					{Value: "labour", Label: "Labour/Travail du sol"},
					{Value: "planting", Label: "Plantation/Semis"},
					{Value: "harvesting", Label: "Récolte"},
					{Value: "irrigation", Label: "Irrigation"},
					{Value: "consulting", Label: "Conseil agricole"},
					{Value: "maintenance", Label: "Maintenance d'équipement"},
					{Value: "pest_control", Label: "Lutte contre les nuisibles"},
					{Value: "logistics", Label: "Logistique/Transport"},
					{Value: "pruning", Label: "Taille/Élagage"},
					{Value: "fertilization", Label: "Fertilisation"},
				},
			},
			{
				Name: "service_type", Label: "Type de service", Type: FieldSelect, Required: true,
				Options: []Option{
					{Value: "hourly", Label: "À l'heure"},
					{Value: "daily", Label: "À la journée"},
					{Value: "fixed_price", Label: "Forfait"},
					{Value: "contract", Label: "Contrat"},
					{Value: "project", Label: "Projet"},
				},
			},
			{Name: "duration", Label: "Durée estimée", Type: FieldText, Placeholder: "Ex: 2 jours, 4 heures, 1 semaine"},
			{
				Name: "required_experience", Label: "Expérience requise", Type: FieldSelect,
				Options: []Option{
					{Value: "beginner", Label: "Débutant"},
					{Value: "intermediate", Label: "Intermédiaire"},
					{Value: "expert", Label: "Expert"},
					{Value: "certified", Label: "Certifié"},
				},
			},
			{Name: "certifications", Label: "Certifications", Type: FieldTextarea, Placeholder: "Certifications ou qualifications spécifiques"},
			{Name: "availability_schedule", Label: "Disponibilité", Type: FieldTextarea, Placeholder: "Jours et heures de disponibilité"},
			{Name: "service_area", Label: "Zone de service", Type: FieldText, Required: true, Placeholder: "Ex: Région de Thiès, Rayon de 50km"},
			{Name: "equipment_included", Label: "Équipement inclus", Type: FieldCheckbox},
		},
		PriceUnitOptions: []Option{
			{Value: "hour", Label: "FCFA/heure"},
			{Value: "day", Label: "FCFA/jour"},
			{Value: "service", Label: "FCFA/service"},
			{Value: "hectare", Label: "FCFA/hectare"},
			{Value: "contract", Label: "FCFA/contrat"},
			{Value: "project", Label: "FCFA/projet"},
		},
	},
	{
		Type:        models.KindEquipment,
		Label:       "Matériaux/Équipements Agricoles",
		Description: "Vente de matériels et équipements agricoles",
		Fields: []Field{
			{
				Name: "equipment_category", Label: "Catégorie d'équipement", Type: FieldSelect, Required: true,
				Options: []Option{
					{Value: "tools", Label: "Outils manuels"},
					{Value: "machinery", Label: "Machinerie lourde"},
					{Value: "irrigation", Label: "Systèmes d'irrigation"},
					{Value: "storage", Label: "Matériel de stockage"},
					{Value: "protection", Label: "Équipement de protection"},
					{Value: "fertilizers", Label: "Engrais/Fertilisants"},
					{Value: "seeds", Label: "Semences/Plants"},
					{Value: "consumables", Label: "Consommables"},
					{Value: "greenhouse", Label: "Serres/Abris"},
					{Value: "livestock", Label: "Équipement d'élevage"},
				},
			},
			{Name: "brand", Label: "Marque", Type: FieldText, Placeholder: "Ex: John Deere, Kubota, Massey Ferguson"},
			{Name: "model", Label: "Modèle", Type: FieldText, Placeholder: "Ex: TX 1000, Model X5"},
			{
				Name: "condition", Label: "État", Type: FieldSelect, Required: true,
				Options: []Option{
					{Value: "new", Label: "Neuf"},
					{Value: "like_new", Label: "Comme neuf"},
					{Value: "good", Label: "Bon état"},
					{Value: "used", Label: "Occasion"},
					{Value: "refurbished", Label: "Reconditionné"},
				},
			},
			{Name: "warranty", Label: "Garantie", Type: FieldText, Placeholder: "Ex: 1 an, 6 mois, aucune"},
			{Name: "technical_specs", Label: "Spécifications techniques", Type: FieldTextarea, Placeholder: "Dimensions, puissance, capacité, matériaux, etc."},
			{Name: "installation_service", Label: "Service d'installation", Type: FieldCheckbox},
			{Name: "delivery_included", Label: "Livraison incluse", Type: FieldCheckbox},
		},
		PriceUnitOptions: []Option{
			{Value: "unit", Label: "FCFA/unité"},
			{Value: "kg", Label: "FCFA/kg"},
			{Value: "liter", Label: "FCFA/litre"},
			{Value: "package", Label: "FCFA/paquet"},
			{Value: "set", Label: "FCFA/ensemble"},
			{Value: "meter", Label: "FCFA/mètre"},
		},
	},
}

// ProductTypes returns every registered kind config.
func ProductTypes() []ProductTypeConfig {
	return productTypes
}

// Get returns the config for a kind, or nil when the kind has no catalog
// entry (agricultural products use first-class columns, not the catalog).
func Get(productType string) *ProductTypeConfig {
	for i := range productTypes {
		if productTypes[i].Type == productType {
			return &productTypes[i]
		}
	}
	return nil
}

// RequiredFields lists the names of the fields flagged required for a kind.
func RequiredFields(productType string) []string {
	cfg := Get(productType)
	if cfg == nil {
		return nil
	}
	var names []string
	for _, f := range cfg.Fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return names
}
