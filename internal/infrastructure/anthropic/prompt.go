package anthropic

import (
	"fmt"
	"strings"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

// 提示词内容为业务素材：中文 → 阿根廷西语，
// 教授/助理走正式语体，客户走口语语体（小写、省略重音和标点）

// buildLiteralPrompt 直译提示词：只求准确，不做风格适配
func buildLiteralPrompt(text string) string {
	return fmt.Sprintf(`Traducí el siguiente mensaje del chino al español de forma literal y precisa, sin adaptar el estilo. Respondé únicamente con la traducción, sin explicaciones.

Mensaje:
%s`, text)
}

// buildStyledPrompt 语体化提示词：按角色差异化风格规则，追加自定义指令
func buildStyledPrompt(persona model.Persona, gender model.Gender, text string, custom []string) string {
	var b strings.Builder

	b.WriteString("Traducí el siguiente mensaje del chino al español argentino. Respondé únicamente con la traducción final, sin explicaciones.\n\n")

	switch persona {
	case model.PersonaProfessor:
		b.WriteString("El mensaje es de un PROFESOR de trading. Usá un tono formal y profesional: acentos correctos, comas y puntos, voseo argentino formal.\n")
	case model.PersonaAssistant:
		b.WriteString("El mensaje es de una ASISTENTE del profesor. Usá un tono formal y cordial: acentos correctos, comas y puntos, voseo argentino.\n")
	case model.PersonaClient:
		b.WriteString("El mensaje es de un CLIENTE del grupo. Usá un tono informal de chat: todo en minúsculas, sin acentos, sin comas, sin punto final, voseo argentino coloquial.\n")
		if gender == model.GenderFemale {
			b.WriteString("La clienta es mujer: usá concordancia de género femenino.\n")
		} else {
			b.WriteString("El cliente es hombre: usá concordancia de género masculino.\n")
		}
	}

	if len(custom) > 0 {
		b.WriteString("\nInstrucciones adicionales del operador:\n")
		for _, instruction := range custom {
			b.WriteString("- ")
			b.WriteString(instruction)
			b.WriteString("\n")
		}
	}

	b.WriteString("\nMensaje:\n")
	b.WriteString(text)
	return b.String()
}
