package search

import "strings"

// SynonymGroup ties a principal service term to its everyday alternates.
type SynonymGroup struct {
	Principal  string
	Alternates []string
}

// DefaultSynonyms returns the curated synonym table. Terms are in the
// catalog's language (Brazilian Portuguese) and are normalized when indexed.
func DefaultSynonyms() []SynonymGroup {
	return []SynonymGroup{
		// Information technology
		{"desenvolvimento de sistemas", []string{"software", "programação", "aplicativo", "app", "sistema", "código", "developer", "dev", "programador"}},
		{"análise de sistemas", []string{"analista", "requisitos", "especificação", "levantamento"}},
		{"processamento de dados", []string{"dados", "data", "processamento", "batch", "etl"}},
		{"consultoria em informática", []string{"ti", "tecnologia", "computação", "suporte técnico", "help desk"}},
		{"licenciamento de software", []string{"licença", "software", "programa", "aplicativo", "assinatura"}},
		{"hospedagem", []string{"hosting", "servidor", "cloud", "nuvem", "datacenter", "data center"}},
		{"manutenção de computadores", []string{"hardware", "equipamento", "reparo", "conserto", "assistência técnica"}},

		// Accounting and finance
		{"contabilidade", []string{"contador", "contábil", "escrituração", "balanço", "balancete", "demonstrações"}},
		{"auditoria", []string{"auditor", "revisão", "exame", "verificação", "conformidade"}},
		{"consultoria financeira", []string{"finanças", "investimento", "planejamento financeiro", "gestão financeira"}},
		{"assessoria tributária", []string{"impostos", "tributos", "fiscal", "tributação", "tax"}},
		{"perícia contábil", []string{"perito", "laudo", "judicial", "cálculo judicial"}},

		// Legal
		{"advocacia", []string{"advogado", "jurídico", "direito", "legal", "assessoria jurídica"}},
		{"consultoria jurídica", []string{"parecer", "opinião legal", "análise jurídica"}},

		// Health
		{"medicina", []string{"médico", "saúde", "clínica", "hospital", "atendimento médico"}},
		{"odontologia", []string{"dentista", "dental", "dente", "odonto"}},
		{"psicologia", []string{"psicólogo", "terapia", "psicoterapia", "saúde mental"}},
		{"fisioterapia", []string{"fisioterapeuta", "reabilitação", "rpg", "pilates terapêutico"}},
		{"enfermagem", []string{"enfermeiro", "home care", "cuidador"}},
		{"exames", []string{"laboratório", "análise clínica", "diagnóstico", "imagem"}},

		// Engineering and construction
		{"engenharia", []string{"engenheiro", "projeto", "cálculo estrutural", "obra"}},
		{"arquitetura", []string{"arquiteto", "projeto arquitetônico", "design de interiores"}},
		{"construção civil", []string{"obra", "edificação", "reforma", "construção"}},
		{"instalações", []string{"elétrica", "hidráulica", "ar condicionado", "climatização"}},

		// Marketing and communication
		{"publicidade", []string{"propaganda", "anúncio", "mídia", "marketing", "advertising"}},
		{"design gráfico", []string{"designer", "arte", "layout", "identidade visual", "logo"}},
		{"assessoria de imprensa", []string{"comunicação", "pr", "relações públicas", "mídia"}},

		// Education
		{"ensino", []string{"educação", "curso", "aula", "treinamento", "capacitação"}},
		{"escola", []string{"colégio", "instituição de ensino", "educacional"}},

		// Transport
		{"transporte", []string{"frete", "logística", "entrega", "distribuição", "carga"}},
		{"mudança", []string{"remoção", "transferência", "mudanças"}},

		// Other services
		{"limpeza", []string{"higienização", "conservação", "zeladoria", "faxina"}},
		{"segurança", []string{"vigilância", "monitoramento", "proteção", "alarme"}},
		{"manutenção", []string{"reparo", "conserto", "assistência", "suporte"}},
		{"locação", []string{"aluguel", "arrendamento", "cessão"}},
	}
}

// SynonymIndex is the normalized, inverted form of a synonym table. It is
// read-only after construction and safe for concurrent use.
type SynonymIndex struct {
	groups []normGroup
	keys   []string       // indexed keys in first-seen order
	owner  map[string]int // key -> group; later groups win on collision
}

type normGroup struct {
	principal  string
	alternates []string
}

// NewSynonymIndex normalizes groups and builds the inverted key index.
func NewSynonymIndex(groups []SynonymGroup) *SynonymIndex {
	idx := &SynonymIndex{
		groups: make([]normGroup, 0, len(groups)),
		owner:  make(map[string]int),
	}
	for _, g := range groups {
		p := Normalize(g.Principal)
		if p == "" {
			continue
		}
		ng := normGroup{principal: p}
		for _, a := range g.Alternates {
			if na := Normalize(a); na != "" {
				ng.alternates = append(ng.alternates, na)
			}
		}
		gi := len(idx.groups)
		idx.groups = append(idx.groups, ng)

		idx.index(p, gi)
		for _, a := range ng.alternates {
			idx.index(a, gi)
		}
	}
	return idx
}

func (s *SynonymIndex) index(key string, group int) {
	if _, seen := s.owner[key]; !seen {
		s.keys = append(s.keys, key)
	}
	s.owner[key] = group
}

// Expand returns the normalized query followed by every synonym it relates
// to, without duplicates. The first element is always the normalized query.
//
// A query relates to a group when an indexed key contains the query or the
// query contains the key, or when the query is a substring of the group's
// principal term or of any of its alternates.
func (s *SynonymIndex) Expand(query string) []string {
	q := Normalize(query)
	terms := newTermSet(q)
	if q == "" || s == nil {
		return terms.list
	}

	for _, key := range s.keys {
		if strings.Contains(key, q) || strings.Contains(q, key) {
			terms.addGroup(s.groups[s.owner[key]])
		}
	}
	for _, g := range s.groups {
		if strings.Contains(g.principal, q) {
			terms.addGroup(g)
			continue
		}
		for _, a := range g.alternates {
			if strings.Contains(a, q) {
				terms.addGroup(g)
				break
			}
		}
	}
	return terms.list
}

// Len returns the number of synonym groups.
func (s *SynonymIndex) Len() int {
	if s == nil {
		return 0
	}
	return len(s.groups)
}

type termSet struct {
	list []string
	seen map[string]struct{}
}

func newTermSet(first string) *termSet {
	return &termSet{list: []string{first}, seen: map[string]struct{}{first: {}}}
}

func (t *termSet) add(term string) {
	if term == "" {
		return
	}
	if _, ok := t.seen[term]; ok {
		return
	}
	t.seen[term] = struct{}{}
	t.list = append(t.list, term)
}

func (t *termSet) addGroup(g normGroup) {
	t.add(g.principal)
	for _, a := range g.alternates {
		t.add(a)
	}
}
