package service

import "github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

type specialtyAlias struct {
	canonical string
	aliases   []string
}

// specialtyAliases is consulted in order when an exact name lookup misses.
// Matching is a case-insensitive substring test against the requested name.
// Avoid short aliases: "ENT" would match "gastroENTerology".
var specialtyAliases = []specialtyAlias{
	{entity.SpecialtyEmergency, []string{"emergency", "emergência", "emergencia", "pronto-socorro", "urgência"}},
	{entity.SpecialtyENT, []string{"otorrinolaringologia", "otorrinolaryngology", "otorhino", "otorrino", "orl", "ear, nose"}},
	{entity.SpecialtyCardiology, []string{"cardiologia", "cardiologist", "cardio"}},
	{entity.SpecialtyNeurology, []string{"neurologia", "neurologist"}},
	{entity.SpecialtyPulmonology, []string{"pneumologia", "pneumology", "pulmonologist", "pulmonar"}},
	{entity.SpecialtyPsychiatry, []string{"psiquiatria", "psychiatrist"}},
	{entity.SpecialtyOrthopedics, []string{"ortopedia", "orthopaedics", "orthopedist"}},
	{entity.SpecialtyAllergology, []string{"alergologia", "allergist", "immunology"}},
	{entity.SpecialtyGastro, []string{"gastroenterologia", "gastro"}},
	{entity.SpecialtyOphthalmology, []string{"oftalmologia", "ophthalmologist", "eye doctor"}},
	{entity.SpecialtyDermatology, []string{"dermatologia", "dermatologist"}},
	{entity.SpecialtyEndocrinology, []string{"endocrinologia", "endocrinologist"}},
	{entity.SpecialtyUrology, []string{"urologia", "urologist"}},
	{entity.SpecialtyPediatrics, []string{"pediatria", "paediatrics", "pediatrician"}},
	{entity.SpecialtyGynecology, []string{"ginecologia", "gynaecology", "obstetrics", "gynecologist"}},
	{entity.SpecialtyGeneralMedicine, []string{"clínica geral", "clinica geral", "clínico geral", "general practice", "family medicine"}},
}
