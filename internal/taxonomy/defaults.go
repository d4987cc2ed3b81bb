package taxonomy

import (
	"slices"

	"github.com/mrlokans/bookstack/internal/utils"
)

// Default returns the built-in taxonomy used when a user has not
// configured one. A fresh copy is returned on every call.
func Default() Taxonomy {
	return New(
		Class{Name: "Tecnologia & IA", Categories: []string{
			"Análise de Dados",
			"Ciência de Dados",
			"IA",
			"Visão Computacional",
			"Machine Learning",
			"Programação",
			"Sistemas de IA & LLMs",
		}},
		Class{Name: "Engenharia & Arquitetura", Categories: []string{
			"Arquitetura de Software",
			"Engenharia de Dados",
			"MLOps",
		}},
		Class{Name: "Conhecimento & Ciências", Categories: []string{
			"Conhecimento Geral",
			"Estatística",
			"Cosmologia",
		}},
		Class{Name: "Negócios & Finanças", Categories: []string{
			"Finanças Pessoais",
			"Negócios",
			"Liberdade Econômica",
		}},
		Class{Name: "Literatura & Cultura", Categories: []string{
			"Diversidade e Inclusão",
			"História/Ficção",
			"Literatura Brasileira",
		}},
		Class{Name: "Desenvolvimento Pessoal", Categories: []string{
			"Bem-estar",
			"Comunicação",
			"Criatividade",
			"Inteligência Emocional",
			"Liderança",
			"Produtividade",
			"Biohacking & Existência",
		}},
	)
}

var defaultAvailabilityOptions = []string{"Físico", "Virtual", "Desejado", "Emprestado", "N/A"}

// DefaultAvailabilityOptions returns the built-in availability list.
func DefaultAvailabilityOptions() []string {
	return slices.Clone(defaultAvailabilityOptions)
}

// AvailabilityOptionsOrDefault returns options, or the built-in list when
// options is empty.
func AvailabilityOptionsOrDefault(options []string) []string {
	if len(options) == 0 {
		return DefaultAvailabilityOptions()
	}
	return options
}

// fallbackClasses maps lower-cased free-text categories that are frequently
// stored without a class to the class they belong to.
var fallbackClasses = map[string]string{
	"comunicação":                   "Desenvolvimento Pessoal",
	"bem-estar":                     "Desenvolvimento Pessoal",
	"criatividade":                  "Desenvolvimento Pessoal",
	"inteligência emocional":        "Desenvolvimento Pessoal",
	"liderança":                     "Desenvolvimento Pessoal",
	"produtividade":                 "Desenvolvimento Pessoal",
	"biohacking & existência":       "Desenvolvimento Pessoal",
	"diversidade e inclusão":        "Literatura & Cultura",
	"história/ficção":               "Literatura & Cultura",
	"literatura brasileira":         "Literatura & Cultura",
	"literatura brasileira clássica": "Literatura & Cultura",
	"machine learning":              "Tecnologia & IA",
	"análise de dados":              "Tecnologia & IA",
	"data science":                  "Tecnologia & IA",
	"ciência de dados":              "Tecnologia & IA",
	"ia":                            "Tecnologia & IA",
	"visão computacional":           "Tecnologia & IA",
	"programação":                   "Tecnologia & IA",
	"sistemas de ia & llms":         "Tecnologia & IA",
	"arquitetura de software":       "Engenharia & Arquitetura",
	"engenharia de dados":           "Engenharia & Arquitetura",
	"mlops":                         "Engenharia & Arquitetura",
	"conhecimento geral":            "Conhecimento & Ciências",
	"estatística":                   "Conhecimento & Ciências",
	"cosmologia":                    "Conhecimento & Ciências",
	"finanças pessoais":             "Negócios & Finanças",
	"negócios":                      "Negócios & Finanças",
	"liberdade econômica":           "Negócios & Finanças",
}

// FallbackClass looks category up in the built-in table of known
// free-text categories, ignoring case and surrounding whitespace.
func FallbackClass(category string) (string, bool) {
	key := utils.NormalizeTitle(category)
	if key == "" {
		return "", false
	}
	cls, ok := fallbackClasses[key]
	return cls, ok
}
