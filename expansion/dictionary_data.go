package expansion

// defaultEntries is the built-in symptom phrase dictionary. Patterns are
// lowercase; expansions mix therapeutic-class keywords with exact corpus
// ingredient names. Only membership is meaningful, not position.
var defaultEntries = []Entry{
	// Respiratory
	{Pattern: "tosse", Expansion: "mucolítico expectorante ACETILCISTEÍNA"},
	{Pattern: "catarro", Expansion: "mucolítico expectorante ACETILCISTEÍNA"},
	{Pattern: "secreção", Expansion: "mucolítico expectorante ACETILCISTEÍNA"},
	{Pattern: "tosse seca", Expansion: "antitussígeno"},
	{Pattern: "tosse produtiva", Expansion: "mucolítico expectorante ACETILCISTEÍNA"},
	{Pattern: "tossindo", Expansion: "mucolítico expectorante"},
	{Pattern: "pigarro", Expansion: "mucolítico expectorante"},
	{Pattern: "peito carregado", Expansion: "mucolítico expectorante"},
	{Pattern: "pulmão", Expansion: "broncodilatador"},
	{Pattern: "respirar", Expansion: "broncodilatador"},
	{Pattern: "respiração", Expansion: "broncodilatador"},
	{Pattern: "falta de ar", Expansion: "broncodilatador antiasmático AMINOFILINA SALBUTAMOL"},
	{Pattern: "dificuldade para respirar", Expansion: "broncodilatador antiasmático"},
	{Pattern: "chiado", Expansion: "broncodilatador antiasmático"},
	{Pattern: "asma", Expansion: "broncodilatador antiasmático AMINOFILINA SALBUTAMOL"},
	{Pattern: "bronquite", Expansion: "broncodilatador"},
	{Pattern: "nariz entupido", Expansion: "descongestionante"},
	{Pattern: "nariz", Expansion: "descongestionante anti-histamínico"},
	{Pattern: "coriza", Expansion: "anti-histamínico descongestionante"},
	{Pattern: "espirro", Expansion: "anti-histamínico"},
	{Pattern: "espirrando", Expansion: "anti-histamínico"},
	{Pattern: "sinusite", Expansion: "descongestionante antibiótico"},
	{Pattern: "rinite", Expansion: "anti-histamínico descongestionante"},

	// Pain and fever
	{Pattern: "dor de cabeça", Expansion: "analgésico antipirético PARACETAMOL DIPIRONA"},
	{Pattern: "cabeça", Expansion: "analgésico antipirético PARACETAMOL"},
	{Pattern: "cefaleia", Expansion: "analgésico antipirético"},
	{Pattern: "enxaqueca", Expansion: "analgésico"},
	{Pattern: "febre", Expansion: "antipirético analgésico PARACETAMOL DIPIRONA"},
	{Pattern: "febril", Expansion: "antipirético"},
	{Pattern: "temperatura", Expansion: "antipirético"},
	{Pattern: "corpo quente", Expansion: "antipirético"},
	{Pattern: "calafrio", Expansion: "antipirético analgésico"},
	{Pattern: "dor", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "doendo", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "doído", Expansion: "analgésico"},
	{Pattern: "dói", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "latejando", Expansion: "analgésico"},
	{Pattern: "dor no corpo", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "dor muscular", Expansion: "analgésico relaxante muscular anti-inflamatório"},
	{Pattern: "músculo", Expansion: "relaxante muscular anti-inflamatório"},
	{Pattern: "contratura", Expansion: "relaxante muscular"},
	{Pattern: "tensão muscular", Expansion: "relaxante muscular"},
	{Pattern: "costas", Expansion: "analgésico relaxante muscular anti-inflamatório"},
	{Pattern: "lombar", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "coluna", Expansion: "analgésico anti-inflamatório"},

	// Digestive
	{Pattern: "estômago", Expansion: "antiácido antissecretor"},
	{Pattern: "estomago", Expansion: "antiácido antissecretor"},
	{Pattern: "barriga", Expansion: "antiespasmódico antiácido"},
	{Pattern: "abdome", Expansion: "antiespasmódico"},
	{Pattern: "abdominal", Expansion: "antiespasmódico"},
	{Pattern: "azia", Expansion: "antiácido BICARBONATO DE SÓDIO CARBONATO DE CÁLCIO"},
	{Pattern: "queimação", Expansion: "antiácido BICARBONATO DE SÓDIO CARBONATO DE CÁLCIO"},
	{Pattern: "refluxo", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "gastrite", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "úlcera", Expansion: "antiácido antissecretor"},
	{Pattern: "indigestão", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "má digestão", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "empachado", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "náusea", Expansion: "antiemético"},
	{Pattern: "nausea", Expansion: "antiemético"},
	{Pattern: "enjoo", Expansion: "antiemético"},
	{Pattern: "enjoado", Expansion: "antiemético"},
	{Pattern: "vômito", Expansion: "antiemético"},
	{Pattern: "vomito", Expansion: "antiemético"},
	{Pattern: "vomitando", Expansion: "antiemético"},
	{Pattern: "diarreia", Expansion: "antiespasmódico BROMOPRIDA"},
	{Pattern: "diarréia", Expansion: "antiespasmódico BROMOPRIDA"},
	{Pattern: "intestino", Expansion: "antiespasmódico laxante SULFATO DE MAGNÉSIO"},
	{Pattern: "intestino preso", Expansion: "laxante SULFATO DE MAGNÉSIO SULFATO DE SÓDIO"},
	{Pattern: "constipação", Expansion: "laxante SULFATO DE MAGNÉSIO"},
	{Pattern: "prisão de ventre", Expansion: "laxante SULFATO DE MAGNÉSIO SULFATO DE SÓDIO"},
	{Pattern: "gases", Expansion: "antiespasmódico"},
	{Pattern: "cólica", Expansion: "antiespasmódico analgésico"},
	{Pattern: "colica", Expansion: "antiespasmódico analgésico"},

	// Infections
	{Pattern: "infecção", Expansion: "antibiótico antibacteriano"},
	{Pattern: "infeccao", Expansion: "antibiótico antibacteriano"},
	{Pattern: "infectado", Expansion: "antibiótico"},
	{Pattern: "bactéria", Expansion: "antibiótico antibacteriano"},
	{Pattern: "bacteria", Expansion: "antibiótico"},
	{Pattern: "pus", Expansion: "antibiótico"},
	{Pattern: "garganta", Expansion: "antibiótico anti-inflamatório analgésico"},
	{Pattern: "amigdalite", Expansion: "antibiótico anti-inflamatório"},
	{Pattern: "faringite", Expansion: "antibiótico anti-inflamatório"},
	{Pattern: "urinária", Expansion: "antibiótico"},
	{Pattern: "urina", Expansion: "antibiótico"},
	{Pattern: "ardência", Expansion: "antibiótico"},

	// Skin and allergies
	{Pattern: "alergia", Expansion: "anti-histamínico antialérgico"},
	{Pattern: "alérgico", Expansion: "anti-histamínico"},
	{Pattern: "alergico", Expansion: "anti-histamínico"},
	{Pattern: "coceira", Expansion: "anti-histamínico antipruriginoso"},
	{Pattern: "coçando", Expansion: "anti-histamínico"},
	{Pattern: "urticária", Expansion: "anti-histamínico"},
	{Pattern: "vermelhidão", Expansion: "anti-histamínico anti-inflamatório"},
	{Pattern: "dermatite", Expansion: "corticosteroide anti-inflamatório"},
	{Pattern: "eczema", Expansion: "corticosteroide"},
	{Pattern: "pele", Expansion: "corticosteroide anti-inflamatório"},
	{Pattern: "fungo", Expansion: "antifúngico FLUCONAZOL NISTATINA GRISEOFULVINA"},
	{Pattern: "micose", Expansion: "antifúngico FLUCONAZOL NISTATINA CICLOPIROX"},
	{Pattern: "frieira", Expansion: "antifúngico NISTATINA CICLOPIROX FLUCONAZOL"},
	{Pattern: "herpes", Expansion: "antiviral ACICLOVIR"},
	{Pattern: "ferida", Expansion: "antisséptico cicatrizante"},

	// Cardiovascular
	{Pattern: "pressão alta", Expansion: "anti-hipertensivo CAPTOPRIL ATENOLOL"},
	{Pattern: "pressão", Expansion: "anti-hipertensivo"},
	{Pattern: "hipertensão", Expansion: "anti-hipertensivo diurético"},
	{Pattern: "hipertensao", Expansion: "anti-hipertensivo"},
	{Pattern: "coração", Expansion: "anti-hipertensivo antiarrítmico antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "coracao", Expansion: "anti-hipertensivo antianginoso CLORIDRATO DE PROPRANOLOL"},
	{Pattern: "palpitação", Expansion: "antiarrítmico"},
	{Pattern: "taquicardia", Expansion: "antiarrítmico"},

	// Chest pain
	{Pattern: "dor no peito", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "pontada no peito", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "pontada", Expansion: "antianginoso analgésico CLORIDRATO DE PROPRANOLOL"},
	{Pattern: "lado esquerdo", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "aperto no peito", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "angina", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "peito apertado", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL"},
	{Pattern: "peito doendo", Expansion: "antianginoso CLORIDRATO DE PROPRANOLOL CLORIDRATO DE DILTIAZEM"},
	{Pattern: "inchaço", Expansion: "diurético"},
	{Pattern: "inchaco", Expansion: "diurético"},
	{Pattern: "inchado", Expansion: "diurético"},
	{Pattern: "retenção", Expansion: "diurético"},

	// Nervous system
	{Pattern: "ansiedade", Expansion: "ansiolítico benzodiazepínico DIAZEPAM"},
	{Pattern: "ansioso", Expansion: "ansiolítico"},
	{Pattern: "nervoso", Expansion: "ansiolítico"},
	{Pattern: "nervosismo", Expansion: "ansiolítico"},
	{Pattern: "agitado", Expansion: "ansiolítico"},
	{Pattern: "inquieto", Expansion: "ansiolítico"},
	{Pattern: "insônia", Expansion: "sedativo hipnótico benzodiazepínico"},
	{Pattern: "insonia", Expansion: "sedativo hipnótico benzodiazepínico"},
	{Pattern: "dormir", Expansion: "sedativo hipnótico"},
	{Pattern: "sono", Expansion: "sedativo hipnótico"},
	{Pattern: "não consigo dormir", Expansion: "sedativo hipnótico"},
	{Pattern: "acordando", Expansion: "sedativo"},
	{Pattern: "depressão", Expansion: "antidepressivo"},
	{Pattern: "depressao", Expansion: "antidepressivo"},
	{Pattern: "triste", Expansion: "antidepressivo"},
	{Pattern: "desânimo", Expansion: "antidepressivo"},
	{Pattern: "convulsão", Expansion: "anticonvulsivante"},

	// Diabetes and metabolism
	{Pattern: "diabetes", Expansion: "hipoglicemiante antidiabético METFORMINA GLIBENCLAMIDA"},
	{Pattern: "diabético", Expansion: "hipoglicemiante"},
	{Pattern: "glicose", Expansion: "hipoglicemiante"},
	{Pattern: "açúcar", Expansion: "hipoglicemiante"},
	{Pattern: "colesterol", Expansion: "hipolipemiante antilipêmico"},
	{Pattern: "triglicérides", Expansion: "hipolipemiante"},

	// Viral and flu
	{Pattern: "virus", Expansion: "antiviral"},
	{Pattern: "vírus", Expansion: "antiviral"},
	{Pattern: "gripe", Expansion: "antiviral antipirético analgésico"},
	{Pattern: "gripado", Expansion: "antipirético analgésico"},
	{Pattern: "resfriado", Expansion: "antipirético analgésico descongestionante"},
	{Pattern: "covid", Expansion: "antiviral antipirético"},

	// Inflammation
	{Pattern: "inflamação", Expansion: "anti-inflamatório corticosteroide"},
	{Pattern: "inflamacao", Expansion: "anti-inflamatório"},
	{Pattern: "inflamado", Expansion: "anti-inflamatório"},
	{Pattern: "artrite", Expansion: "anti-inflamatório analgésico"},
	{Pattern: "reumatismo", Expansion: "anti-inflamatório analgésico"},
	{Pattern: "artrose", Expansion: "anti-inflamatório analgésico"},

	// Eyes
	{Pattern: "olho", Expansion: "colírio anti-inflamatório"},
	{Pattern: "olhos", Expansion: "colírio anti-inflamatório"},
	{Pattern: "conjuntivite", Expansion: "antibiótico anti-inflamatório"},
	{Pattern: "visão", Expansion: "antiglaucomatoso"},

	// Ears
	{Pattern: "ouvido", Expansion: "antibiótico analgésico"},
	{Pattern: "otite", Expansion: "antibiótico"},

	// Worms
	{Pattern: "verme", Expansion: "anti-helmíntico"},
	{Pattern: "parasita", Expansion: "antiparasitário"},
	{Pattern: "lombriga", Expansion: "anti-helmíntico"},

	// Colloquial Brazilian terms

	// pain and malaise
	{Pattern: "tô mal", Expansion: "analgésico antipirético"},
	{Pattern: "to mal", Expansion: "analgésico antipirético"},
	{Pattern: "mal estar", Expansion: "analgésico antipirético"},
	{Pattern: "passando mal", Expansion: "antiemético analgésico"},
	{Pattern: "me sentindo mal", Expansion: "analgésico"},
	{Pattern: "zoado", Expansion: "analgésico antipirético"},
	{Pattern: "acabado", Expansion: "analgésico antipirético"},
	{Pattern: "destruído", Expansion: "analgésico"},
	{Pattern: "morrendo", Expansion: "analgésico antipirético"},
	{Pattern: "ruim", Expansion: "analgésico"},
	{Pattern: "péssimo", Expansion: "analgésico antipirético"},
	{Pattern: "horrível", Expansion: "analgésico"},

	// head
	{Pattern: "cabecinha", Expansion: "analgésico PARACETAMOL"},
	{Pattern: "dor de cachola", Expansion: "analgésico PARACETAMOL"},
	{Pattern: "cabeça explodindo", Expansion: "analgésico PARACETAMOL DIPIRONA"},
	{Pattern: "martelando", Expansion: "analgésico"},

	// stomach
	{Pattern: "bucho", Expansion: "antiácido antiespasmódico"},
	{Pattern: "buchinho", Expansion: "antiácido"},
	{Pattern: "estomago embrulhado", Expansion: "antiemético antiácido"},
	{Pattern: "barriga revirada", Expansion: "antiemético"},
	{Pattern: "barriga doendo", Expansion: "antiespasmódico analgésico"},
	{Pattern: "tripas", Expansion: "antiespasmódico"},
	{Pattern: "pança", Expansion: "antiácido"},
	{Pattern: "caganeira", Expansion: "antidiarreico"},
	{Pattern: "soltura", Expansion: "antidiarreico"},
	{Pattern: "travado", Expansion: "relaxante muscular"},
	{Pattern: "entupido", Expansion: "laxante"},

	// fever and flu
	{Pattern: "pegando fogo", Expansion: "antipirético"},
	{Pattern: "ardendo", Expansion: "antipirético"},
	{Pattern: "morrendo de febre", Expansion: "antipirético PARACETAMOL"},
	{Pattern: "queimando", Expansion: "antipirético"},
	{Pattern: "pegou gripe", Expansion: "antipirético analgésico"},
	{Pattern: "gripão", Expansion: "antipirético analgésico descongestionante"},
	{Pattern: "resfriado brabo", Expansion: "antipirético analgésico"},

	// cough and breathing
	{Pattern: "catarro verde", Expansion: "mucolítico ACETILCISTEÍNA antibiótico"},
	{Pattern: "meleca", Expansion: "descongestionante"},
	{Pattern: "cuspindo catarro", Expansion: "mucolítico expectorante"},
	{Pattern: "escarro", Expansion: "mucolítico expectorante"},
	{Pattern: "garganta trancada", Expansion: "anti-inflamatório analgésico"},
	{Pattern: "garganta arranhando", Expansion: "anti-inflamatório"},
	{Pattern: "nariz escorrendo", Expansion: "anti-histamínico descongestionante"},
	{Pattern: "fungando", Expansion: "descongestionante"},

	// muscle and body
	{Pattern: "travei", Expansion: "relaxante muscular"},
	{Pattern: "duro", Expansion: "relaxante muscular"},
	{Pattern: "moído", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "corpo todo doendo", Expansion: "analgésico anti-inflamatório"},
	{Pattern: "não consigo me mexer", Expansion: "relaxante muscular analgésico"},
	{Pattern: "mau jeito", Expansion: "relaxante muscular analgésico"},

	// sleep and anxiety
	{Pattern: "pilhado", Expansion: "ansiolítico"},
	{Pattern: "elétrico", Expansion: "ansiolítico"},
	{Pattern: "ligado", Expansion: "ansiolítico sedativo"},
	{Pattern: "não paro quieto", Expansion: "ansiolítico"},
	{Pattern: "aperreado", Expansion: "ansiolítico"},
	{Pattern: "estressado", Expansion: "ansiolítico"},
	{Pattern: "tenso", Expansion: "ansiolítico relaxante muscular"},
	{Pattern: "não durmo", Expansion: "sedativo hipnótico"},
	{Pattern: "insone", Expansion: "sedativo hipnótico"},
	{Pattern: "virando a noite", Expansion: "sedativo hipnótico"},

	// skin
	{Pattern: "ardendo a pele", Expansion: "anti-inflamatório corticosteroide"},
	{Pattern: "vermelho", Expansion: "anti-histamínico"},
	{Pattern: "pipocando", Expansion: "anti-histamínico"},
	{Pattern: "bolinhas", Expansion: "anti-histamínico antialérgico"},
	{Pattern: "manchas", Expansion: "anti-histamínico"},
	{Pattern: "ferida braba", Expansion: "antibiótico antisséptico"},
	{Pattern: "infeccionou", Expansion: "antibiótico"},

	// digestive
	{Pattern: "ânsia", Expansion: "antiemético"},
	{Pattern: "ancia", Expansion: "antiemético"},
	{Pattern: "queimando por dentro", Expansion: "antiácido"},
	{Pattern: "estômago pegando fogo", Expansion: "antiácido antissecretor"},
	{Pattern: "arrotando", Expansion: "antiácido"},
	{Pattern: "soluço", Expansion: "antiespasmódico"},

	// other
	{Pattern: "zureta", Expansion: "ansiolítico"},
	{Pattern: "pirado", Expansion: "ansiolítico antipsicótico"},
	{Pattern: "tremendo", Expansion: "ansiolítico"},
	{Pattern: "coisa ruim", Expansion: "analgésico"},
	{Pattern: "problema", Expansion: "analgésico"},
	{Pattern: "me ajuda", Expansion: "analgésico"},
	{Pattern: "preciso de remédio", Expansion: "analgésico"},

	// Heartburn variants naming corpus ingredients
	{Pattern: "terrível", Expansion: "antiácido BICARBONATO DE SÓDIO CARBONATO DE CÁLCIO"},
	{Pattern: "depois de comer", Expansion: "antiácido BICARBONATO DE SÓDIO CARBONATO DE CÁLCIO"},
	{Pattern: "comi", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "comida", Expansion: "antiácido BICARBONATO DE SÓDIO"},
	{Pattern: "alimentação", Expansion: "antiácido BICARBONATO DE SÓDIO"},

	// Glucose variants
	{Pattern: "descontrolada", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA GLIBENCLAMIDA"},
	{Pattern: "descontrolado", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA GLIBENCLAMIDA"},
	{Pattern: "alto", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA anti-hipertensivo"},
	{Pattern: "alta", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA anti-hipertensivo"},
	{Pattern: "subiu", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA anti-hipertensivo"},
	{Pattern: "açúcar no sangue", Expansion: "hipoglicemiante CLORIDRATO DE METFORMINA"},

	// Diarrhoea variants (the corpus has no antidiarrhoeal, map to antispasmodics)
	{Pattern: "banheiro", Expansion: "antiespasmódico BROMOPRIDA"},
	{Pattern: "fezes", Expansion: "antiespasmódico laxante"},
	{Pattern: "líquido", Expansion: "antiespasmódico"},
	{Pattern: "solta", Expansion: "antiespasmódico BROMOPRIDA"},
	{Pattern: "solto", Expansion: "antiespasmódico"},

	// Constipation variants
	{Pattern: "preso", Expansion: "laxante SULFATO DE MAGNÉSIO"},
	{Pattern: "dias", Expansion: "analgésico"},
	{Pattern: "há dias", Expansion: "analgésico"},
	{Pattern: "evacuar", Expansion: "laxante SULFATO DE MAGNÉSIO"},
	{Pattern: "não consigo evacuar", Expansion: "laxante SULFATO DE MAGNÉSIO"},

	// Asthma and breathing variants
	{Pattern: "chiado no peito", Expansion: "broncodilatador AMINOFILINA TEOFILINA SULFATO DE EFEDRINA"},
	{Pattern: "peito", Expansion: "broncodilatador AMINOFILINA analgésico"},
	{Pattern: "pulmões", Expansion: "broncodilatador AMINOFILINA TEOFILINA"},
	{Pattern: "respiratório", Expansion: "broncodilatador AMINOFILINA"},
	{Pattern: "cansaço", Expansion: "broncodilatador analgésico"},
	{Pattern: "cansado", Expansion: "analgésico"},
	{Pattern: "ofegante", Expansion: "broncodilatador AMINOFILINA TEOFILINA"},

	// Athlete's foot and nail variants
	{Pattern: "pé", Expansion: "antifúngico FLUCONAZOL NISTATINA GRISEOFULVINA"},
	{Pattern: "pés", Expansion: "antifúngico FLUCONAZOL NISTATINA"},
	{Pattern: "dedos", Expansion: "antifúngico FLUCONAZOL NISTATINA CICLOPIROX"},
	{Pattern: "entre os dedos", Expansion: "antifúngico FLUCONAZOL NISTATINA"},
	{Pattern: "unha", Expansion: "antifúngico GRISEOFULVINA FLUCONAZOL"},
	{Pattern: "unhas", Expansion: "antifúngico GRISEOFULVINA FLUCONAZOL"},
}
