// Package prompt renders the generation request for a recommendation: the
// retrieved monographs with their authoritative names, the naming and
// safety rules, and the exact response shapes.
package prompt

import (
	"fmt"
	"strings"

	"github.com/giygas/magistral-api/entities"
)

// SystemInstruction is sent alongside every recommendation prompt.
const SystemInstruction = "Você é um assistente farmacêutico preciso. SEMPRE use nomes químicos EXATOS, NUNCA classes terapêuticas genéricas."

// NameMarker prefixes the authoritative chemical name of each insumo.
const NameMarker = "🔬 NOME QUÍMICO OBRIGATÓRIO:"

// FailureKind is the failure kind the model is told to emit.
const FailureKind = "LIMITACAO_FARMACOPEIA"

const unnamed = "NÃO ESPECIFICADO"

var separator = strings.Repeat("=", 50)

// Build renders the prompt for symptoms over the retrieved insumos.
func Build(symptoms string, insumos []entities.RetrievedInsumo) string {
	var b strings.Builder

	b.WriteString("Você é um Assistente Farmacêutico Magistral especializado em formulações baseadas na Farmacopeia Brasileira.\n\n")
	b.WriteString("**CONTEXTO DOS INSUMOS DISPONÍVEIS:**\n")
	b.WriteString(renderContext(insumos))
	b.WriteString("\n\n**SINTOMAS RELATADOS PELO PACIENTE:**\n")
	b.WriteString(symptoms)
	b.WriteString("\n\n**SUA TAREFA:**\n")
	b.WriteString("Baseado EXCLUSIVAMENTE nos insumos fornecidos acima, recomende uma formulação magistral apropriada.\n\n")
	b.WriteString(rules(symptoms, len(insumos)))
	b.WriteString(responseShape)
	b.WriteString(finalChecklist)

	return b.String()
}

func renderContext(insumos []entities.RetrievedInsumo) string {
	blocks := make([]string, len(insumos))
	for i, ins := range insumos {
		name := strings.ToUpper(strings.TrimSpace(ins.Metadata.Name))
		if name == "" {
			name = unnamed
		}
		blocks[i] = fmt.Sprintf("===== INSUMO %d =====\n%s %s\n\nCONTEÚDO DA MONOGRAFIA:\n%s\n\n(Relevância: %.2f)\n%s",
			i+1, NameMarker, name, ins.Content, ins.RelevanceScore, separator)
	}
	return strings.Join(blocks, "\n\n")
}

func rules(symptoms string, candidates int) string {
	return fmt.Sprintf(`**⚠️ REGRAS ABSOLUTAS - NÃO VIOLAR EM HIPÓTESE ALGUMA:**

1. **NOME DO INSUMO - REGRA CRÍTICA #1:**
   - O campo "nome" DEVE ser COPIADO EXATAMENTE de "%[1]s"
   - NUNCA use termos como: "CLASSE TERAPÊUTICA", "Analgésico", "Antipirético"
   - NUNCA use descrições genéricas de categoria farmacológica
   - NUNCA junte várias descrições separadas por vírgula

   ✅ EXEMPLOS CORRETOS:
   - "nome": "PARACETAMOL"
   - "nome": "DIPIRONA MONOIDRATADA"
   - "nome": "IBUPROFENO"
   - "nome": "ÁCIDO ACETILSALICÍLICO"

   ❌ EXEMPLOS PROIBIDOS:
   - "nome": "CLASSE TERAPÊUTICA"
   - "nome": "Analgésico, antipirético"
   - "nome": "Anticonvulsivante, hipnótico, sedativo"
   - "nome": "Anti-inflamatório não esteroidal"

2. **VALIDAÇÃO OBRIGATÓRIA:**
   - Antes de gerar a resposta JSON, VERIFIQUE se você está usando o nome químico EXATO
   - Se você não conseguir identificar o nome químico, retorne erro ao invés de usar "CLASSE TERAPÊUTICA"

3. **ADEQUAÇÃO CLÍNICA - IMPORTANTE:**
   - SEMPRE tente encontrar um medicamento adequado na lista fornecida
   - Medicamentos para sintomas RELACIONADOS são aceitáveis (ex: dor no peito → antianginoso, anti-inflamatório, analgésico)
   - Se houver dúvida, PREFIRA recomendar um medicamento com alertas de segurança
   - SOMENTE retorne erro se NENHUM dos %[2]d insumos for minimamente adequado, no formato:
   {
     "erro": "Medicamento não disponível na Farmacopeia",
     "tipo_erro": "%[3]s",
     "explicacao": "Não foi possível encontrar medicamentos adequados para esses sintomas específicos.",
     "sintomas_informados": %[4]q
   }

4. Use SOMENTE os insumos do contexto acima

5. Dosagens conservadoras baseadas na Farmacopeia

`, NameMarker, candidates, FailureKind, symptoms)
}

const responseShape = `**FORMATO DE RESPOSTA (JSON):**
` + "```json" + `
{
  "formula": {
    "nome_sugerido": "Nome comercial sugestivo",
    "insumos": [
      {
        "nome": "COPIE_EXATAMENTE_O_NOME_QUIMICO_ACIMA",
        "dose": "500mg",
        "justificativa": "Explicação da escolha"
      }
    ],
    "forma_farmaceutica": "cápsula|solução|creme",
    "quantidade_total": "30 cápsulas"
  },
  "posologia": "Instruções de uso",
  "justificativa_tecnica": "Explicação baseada na Farmacopeia",
  "alertas_seguranca": [
    "Contraindicações",
    "Interações importantes"
  ],
  "referencias": [
    "Farmacopeia Brasileira 6ª Ed."
  ]
}
` + "```" + `

`

const finalChecklist = `**VERIFICAÇÃO FINAL ANTES DE RESPONDER:**
- ✓ Verifiquei que o campo "nome" contém o nome químico EXATO?
- ✓ Não estou usando "CLASSE TERAPÊUTICA" ou termos genéricos?
- ✓ Copiei o texto EXATAMENTE de "` + NameMarker + `"?

Responda APENAS com o JSON, sem texto adicional.`
