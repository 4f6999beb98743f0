package classifier

import "github.com/VictorAraujo38/akkadian-test/internal/domain/entity"

type keywordRule struct {
	keyword   string
	specialty string
	reasoning string
	related   []string
}

// keywordRules is scanned in order; among equal scores the earlier rule wins.
// Keywords and related words are lower case.
var keywordRules = []keywordRule{
	{
		keyword:   "dor no peito",
		specialty: entity.SpecialtyCardiology,
		reasoning: "Chest pain can indicate a cardiovascular condition and needs cardiac evaluation",
		related:   []string{"falta de ar", "palpitação", "palpitações", "pressão alta", "suor frio"},
	},
	{
		keyword:   "chest pain",
		specialty: entity.SpecialtyCardiology,
		reasoning: "Chest pain can indicate a cardiovascular condition and needs cardiac evaluation",
		related:   []string{"shortness of breath", "palpitations", "high blood pressure", "cold sweat"},
	},
	{
		keyword:   "palpitações",
		specialty: entity.SpecialtyCardiology,
		reasoning: "Palpitations suggest a heart rhythm disorder",
		related:   []string{"tontura", "dor no peito", "falta de ar"},
	},
	{
		keyword:   "palpitations",
		specialty: entity.SpecialtyCardiology,
		reasoning: "Palpitations suggest a heart rhythm disorder",
		related:   []string{"dizziness", "chest pain", "shortness of breath"},
	},
	{
		keyword:   "dor de cabeça",
		specialty: entity.SpecialtyNeurology,
		reasoning: "Headaches are assessed by neurology to rule out neurological causes",
		related:   []string{"tontura", "náusea", "enxaqueca", "visão turva"},
	},
	{
		keyword:   "headache",
		specialty: entity.SpecialtyNeurology,
		reasoning: "Headaches are assessed by neurology to rule out neurological causes",
		related:   []string{"dizziness", "nausea", "migraine", "light sensitivity"},
	},
	{
		keyword:   "enxaqueca",
		specialty: entity.SpecialtyNeurology,
		reasoning: "Migraine is a neurological condition",
		related:   []string{"náusea", "sensibilidade à luz"},
	},
	{
		keyword:   "migraine",
		specialty: entity.SpecialtyNeurology,
		reasoning: "Migraine is a neurological condition",
		related:   []string{"nausea", "aura", "light sensitivity"},
	},
	{
		keyword:   "febre",
		specialty: entity.SpecialtyGeneralMedicine,
		reasoning: "Fever is a general symptom best assessed first by general medicine",
		related:   []string{"calafrio", "cansaço", "mal-estar", "dor no corpo"},
	},
	{
		keyword:   "fever",
		specialty: entity.SpecialtyGeneralMedicine,
		reasoning: "Fever is a general symptom best assessed first by general medicine",
		related:   []string{"chills", "fatigue", "body aches"},
	},
	{
		keyword:   "tosse",
		specialty: entity.SpecialtyPulmonology,
		reasoning: "Persistent cough points to the respiratory system",
		related:   []string{"catarro", "chiado", "falta de ar"},
	},
	{
		keyword:   "cough",
		specialty: entity.SpecialtyPulmonology,
		reasoning: "Persistent cough points to the respiratory system",
		related:   []string{"phlegm", "wheezing", "shortness of breath"},
	},
	{
		keyword:   "falta de ar",
		specialty: entity.SpecialtyPulmonology,
		reasoning: "Shortness of breath needs a respiratory assessment",
		related:   []string{"tosse", "chiado", "cansaço"},
	},
	{
		keyword:   "shortness of breath",
		specialty: entity.SpecialtyPulmonology,
		reasoning: "Shortness of breath needs a respiratory assessment",
		related:   []string{"cough", "wheezing", "fatigue"},
	},
	{
		keyword:   "ansiedade",
		specialty: entity.SpecialtyPsychiatry,
		reasoning: "Anxiety symptoms are managed by psychiatry",
		related:   []string{"insônia", "pânico", "depressão", "estresse"},
	},
	{
		keyword:   "anxiety",
		specialty: entity.SpecialtyPsychiatry,
		reasoning: "Anxiety symptoms are managed by psychiatry",
		related:   []string{"insomnia", "panic", "depression", "stress"},
	},
	{
		keyword:   "depressão",
		specialty: entity.SpecialtyPsychiatry,
		reasoning: "Depressive symptoms are managed by psychiatry",
		related:   []string{"tristeza", "insônia", "ansiedade"},
	},
	{
		keyword:   "depression",
		specialty: entity.SpecialtyPsychiatry,
		reasoning: "Depressive symptoms are managed by psychiatry",
		related:   []string{"sadness", "insomnia", "anxiety"},
	},
	{
		keyword:   "dor nas costas",
		specialty: entity.SpecialtyOrthopedics,
		reasoning: "Back pain is usually musculoskeletal",
		related:   []string{"coluna", "lombar", "ciático"},
	},
	{
		keyword:   "back pain",
		specialty: entity.SpecialtyOrthopedics,
		reasoning: "Back pain is usually musculoskeletal",
		related:   []string{"spine", "lower back", "sciatica"},
	},
	{
		keyword:   "dor no joelho",
		specialty: entity.SpecialtyOrthopedics,
		reasoning: "Joint pain is assessed by orthopedics",
		related:   []string{"inchaço", "torção"},
	},
	{
		keyword:   "knee pain",
		specialty: entity.SpecialtyOrthopedics,
		reasoning: "Joint pain is assessed by orthopedics",
		related:   []string{"swelling", "sprain"},
	},
	{
		keyword:   "alergia",
		specialty: entity.SpecialtyAllergology,
		reasoning: "Allergic reactions are handled by allergology",
		related:   []string{"coceira", "espirro", "urticária"},
	},
	{
		keyword:   "allergy",
		specialty: entity.SpecialtyAllergology,
		reasoning: "Allergic reactions are handled by allergology",
		related:   []string{"itching", "sneezing", "hives"},
	},
	{
		keyword:   "dor de estômago",
		specialty: entity.SpecialtyGastro,
		reasoning: "Stomach pain points to the digestive system",
		related:   []string{"náusea", "vômito", "diarreia", "azia"},
	},
	{
		keyword:   "stomach pain",
		specialty: entity.SpecialtyGastro,
		reasoning: "Stomach pain points to the digestive system",
		related:   []string{"nausea", "vomiting", "diarrhea", "heartburn"},
	},
	{
		keyword:   "visão embaçada",
		specialty: entity.SpecialtyOphthalmology,
		reasoning: "Blurred vision requires an eye examination",
		related:   []string{"dor nos olhos", "olho vermelho"},
	},
	{
		keyword:   "blurred vision",
		specialty: entity.SpecialtyOphthalmology,
		reasoning: "Blurred vision requires an eye examination",
		related:   []string{"eye pain", "red eye"},
	},
	{
		keyword:   "dor de garganta",
		specialty: entity.SpecialtyENT,
		reasoning: "Throat pain is examined by otorhinolaryngology",
		related:   []string{"dor de ouvido", "rouquidão", "nariz entupido"},
	},
	{
		keyword:   "sore throat",
		specialty: entity.SpecialtyENT,
		reasoning: "Throat pain is examined by otorhinolaryngology",
		related:   []string{"earache", "hoarseness", "stuffy nose"},
	},
	{
		keyword:   "dor de ouvido",
		specialty: entity.SpecialtyENT,
		reasoning: "Ear pain is examined by otorhinolaryngology",
		related:   []string{"zumbido", "dor de garganta"},
	},
	{
		keyword:   "earache",
		specialty: entity.SpecialtyENT,
		reasoning: "Ear pain is examined by otorhinolaryngology",
		related:   []string{"tinnitus", "sore throat"},
	},
	{
		keyword:   "manchas na pele",
		specialty: entity.SpecialtyDermatology,
		reasoning: "Skin lesions are assessed by dermatology",
		related:   []string{"coceira", "vermelhidão"},
	},
	{
		keyword:   "skin rash",
		specialty: entity.SpecialtyDermatology,
		reasoning: "Skin lesions are assessed by dermatology",
		related:   []string{"itching", "redness"},
	},
	{
		keyword:   "sede excessiva",
		specialty: entity.SpecialtyEndocrinology,
		reasoning: "Excessive thirst can indicate a metabolic or hormonal disorder",
		related:   []string{"urina frequente", "perda de peso"},
	},
	{
		keyword:   "excessive thirst",
		specialty: entity.SpecialtyEndocrinology,
		reasoning: "Excessive thirst can indicate a metabolic or hormonal disorder",
		related:   []string{"frequent urination", "weight loss"},
	},
	{
		keyword:   "dor ao urinar",
		specialty: entity.SpecialtyUrology,
		reasoning: "Painful urination points to the urinary tract",
		related:   []string{"sangue na urina", "urgência"},
	},
	{
		keyword:   "painful urination",
		specialty: entity.SpecialtyUrology,
		reasoning: "Painful urination points to the urinary tract",
		related:   []string{"blood in urine", "urgency"},
	},
}

// Terms checked, in this order, only when no keyword matched.
var (
	emergencyTerms = []string{
		"dor intensa", "dor forte", "sangramento", "hemorragia", "dificuldade para respirar",
		"desmaio", "desmaiei", "convulsão",
		"severe pain", "bleeding", "difficulty breathing", "trouble breathing",
		"fainting", "fainted", "seizure",
	}
	pediatricTerms = []string{
		"criança", "bebê", "meu filho", "minha filha", "infantil",
		"child", "baby", "infant", "toddler", "my son", "my daughter",
	}
	femaleHealthTerms = []string{
		"menstruação", "menstrual", "gravidez", "grávida", "gestante", "dor pélvica",
		"pregnancy", "pregnant", "pelvic pain", "period pain",
	}
)
