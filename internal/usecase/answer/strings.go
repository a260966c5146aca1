package answer

import (
	"fmt"

	"github.com/kailas-cloud/roadbook/internal/domain"
)

// NotFound is the fixed sentence returned when the manual has no evidence.
func NotFound(lang domain.Lang) string {
	switch lang {
	case domain.LangPT:
		return "Não encontro essa informação no manual."
	case domain.LangRO:
		return "Nu găsesc această informație în manual."
	case domain.LangAR:
		return "لا أجد هذه المعلومة في الدليل."
	default:
		return "No encuentro esa información en el manual."
	}
}

func referencesLabel(lang domain.Lang) string {
	switch lang {
	case domain.LangPT:
		return "Referências"
	case domain.LangRO:
		return "Referințe"
	case domain.LangAR:
		return "المراجع"
	default:
		return "Referencias"
	}
}

// Clarification asks the driver to pick a knowledge domain.
func Clarification(lang domain.Lang) string {
	switch lang {
	case domain.LangPT:
		return "A tua pergunta pode referir-se ao manual ou aos postos autorizados. " +
			"Podes indicar se perguntas por um procedimento do manual ou por onde abastecer?"
	case domain.LangRO:
		return "Întrebarea ta se poate referi la manual sau la stațiile autorizate. " +
			"Poți preciza dacă întrebi despre o procedură din manual sau despre unde să alimentezi?"
	case domain.LangAR:
		return "قد يتعلق سؤالك بالدليل أو بمحطات الوقود المعتمدة. " +
			"هل يمكنك توضيح ما إذا كنت تسأل عن إجراء في الدليل أم عن مكان التزوّد بالوقود؟"
	default:
		return "Tu pregunta puede referirse al manual o a las gasolineras autorizadas. " +
			"¿Puedes concretar si preguntas por un procedimiento del manual o por dónde repostar?"
	}
}

// stationText holds the labels of the station listing.
type stationText struct {
	title       string
	country     string
	network     string
	status      string
	result      string
	stations    string
	all         string
	allF        string
	ok          string
	cond        string
	none        string
	instruction string
	shown       string // cap, total
	source      string
	suggestion  string
	noMatch     string
}

func (s stationText) shownLine(shown, total int) string {
	return fmt.Sprintf(s.shown, shown, total)
}

func (s stationText) noMatchText() string {
	return s.noMatch + "\n\n" + s.suggestion + "\n" + s.source
}

func stationStrings(lang domain.Lang) stationText {
	switch lang {
	case domain.LangPT:
		return stationText{
			title:       "Postos autorizados para abastecer (lista oficial):",
			country:     "País",
			network:     "Rede",
			status:      "Estado",
			result:      "Resultado",
			stations:    "postos",
			all:         "TODOS",
			allF:        "TODAS",
			ok:          "OBRIGATÓRIO (ok)",
			cond:        "CONDICIONADO (condicionado)",
			none:        "- (sem resultados)",
			instruction: "Instrução",
			shown:       "A mostrar %d de %d. Indica país ou rede para filtrar.",
			source:      "Fonte: Lista oficial de postos autorizados (gasolineras.csv)",
			suggestion:  "Sugestão: indica país (Espanha/França/Itália/...) ou rede (AS24/IDS/SOLRED).",
			noMatch:     "Não há postos que coincidam com a tua consulta na lista oficial.",
		}
	case domain.LangRO:
		return stationText{
			title:       "Stații autorizate pentru alimentare (listă oficială):",
			country:     "Țară",
			network:     "Rețea",
			status:      "Stare",
			result:      "Rezultat",
			stations:    "stații",
			all:         "TOATE",
			allF:        "TOATE",
			ok:          "OBLIGATORIU (ok)",
			cond:        "CONDIȚIONAT (condiționat)",
			none:        "- (fără rezultate)",
			instruction: "Instrucțiune",
			shown:       "Se afișează %d din %d. Indică țara sau rețeaua.",
			source:      "Sursă: Lista oficială de stații autorizate (gasolineras.csv)",
			suggestion:  "Sugestie: indică țara (Spania/Franța/Italia/...) sau rețeaua (AS24/IDS/SOLRED).",
			noMatch:     "Nu există stații care să corespundă căutării tale în lista oficială.",
		}
	case domain.LangAR:
		return stationText{
			title:       "محطات الوقود المعتمدة للتزوّد (القائمة الرسمية):",
			country:     "البلد",
			network:     "الشبكة",
			status:      "الحالة",
			result:      "النتيجة",
			stations:    "محطة",
			all:         "الكل",
			allF:        "الكل",
			ok:          "إلزامي (ok)",
			cond:        "مشروط (condicionado)",
			none:        "- (لا توجد نتائج)",
			instruction: "التعليمات",
			shown:       "عرض %d من %d. حدّد البلد أو الشبكة.",
			source:      "المصدر: القائمة الرسمية للمحطات المعتمدة (gasolineras.csv)",
			suggestion:  "اقتراح: حدّد البلد (إسبانيا/فرنسا/إيطاليا/...) أو الشبكة (AS24/IDS/SOLRED).",
			noMatch:     "لا توجد محطات تطابق طلبك في القائمة الرسمية.",
		}
	default:
		return stationText{
			title:       "Gasolineras autorizadas para repostar (listado oficial):",
			country:     "País",
			network:     "Red",
			status:      "Estado",
			result:      "Resultado",
			stations:    "estaciones",
			all:         "TODOS",
			allF:        "TODAS",
			ok:          "OBLIGADO (ok)",
			cond:        "CONDICIONADO (condicionado)",
			none:        "- (sin resultados)",
			instruction: "Instrucción",
			shown:       "Mostrando %d de %d. Indica país o red para acotar.",
			source:      "Fuente: Listado oficial de gasolineras autorizadas (gasolineras.csv)",
			suggestion:  "Sugerencia: indica país (España/Francia/Italia/...) o red (AS24/IDS/SOLRED).",
			noMatch:     "No hay gasolineras que coincidan con tu consulta en el listado oficial.",
		}
	}
}
