// Package documenttest provides legacy article fixtures for tests.
package documenttest

import (
	"fmt"
)

func occ(kv ...string) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

func list(items ...map[string]any) []any {
	result := make([]any, len(items))
	for i, item := range items {
		result[i] = item
	}
	return result
}

// Citations returns n references cycling through article, book, thesis,
// conference and link types.
func Citations(n int) []any {
	result := make([]any, 0, n)
	for i := 1; i <= n; i++ {
		num := fmt.Sprint(i)
		var c map[string]any
		switch i % 5 {
		case 1:
			c = map[string]any{
				"v701": list(occ("_", num)),
				"v10":  list(occ("s", "Silva", "n", "J"), occ("s", "Souza", "n", "M")),
				"v12":  list(occ("_", "Reference article "+num, "l", "en")),
				"v30":  list(occ("_", "Rev Saude Publica")),
				"v31":  list(occ("_", "40")),
				"v32":  list(occ("_", "2")),
				"v14":  list(occ("_", "100-110")),
				"v65":  list(occ("_", "20060400")),
				"v237": list(occ("_", "10.1590/ref."+num)),
				"v704": list(occ("_", "Silva J, Souza M. Reference article "+num+". <i>Rev Saude Publica</i>. 2006;40(2):100-10.")),
			}
		case 2:
			c = map[string]any{
				"v701": list(occ("_", num)),
				"v16":  list(occ("s", "Pereira", "n", "A")),
				"v18":  list(occ("_", "Book title "+num)),
				"v62":  list(occ("_", "Fiocruz")),
				"v66":  list(occ("_", "Rio de Janeiro")),
				"v63":  list(occ("_", "2")),
				"v65":  list(occ("_", "19990000")),
				"v69":  list(occ("_", "85-7541-000-0")),
			}
		case 3:
			c = map[string]any{
				"v701": list(occ("_", num)),
				"v10":  list(occ("s", "Costa", "n", "R")),
				"v18":  list(occ("_", "Thesis title "+num)),
				"v51":  list(occ("_", "Doutorado")),
				"v65":  list(occ("_", "2004")),
			}
		case 4:
			c = map[string]any{
				"v701": list(occ("_", num)),
				"v10":  list(occ("s", "Lima", "n", "P")),
				"v53":  list(occ("_", "Congresso Brasileiro "+num)),
				"v65":  list(occ("_", "20010900")),
			}
		default:
			c = map[string]any{
				"v701": list(occ("_", num)),
				"v37":  list(occ("_", "http://www.example.org/"+num, "t", "Site "+num)),
				"v65":  list(occ("_", "2010")),
			}
		}
		result = append(result, c)
	}
	return result
}

// Article returns a fully populated legacy document: original language pt,
// translations in en and es, one DOI, 23 citations, 3 affiliations and
// pages 639-649.
func Article() map[string]any {
	return map[string]any{
		"code":            "S0034-89102010000400007",
		"collection":      "scl",
		"license":         "by/4.0",
		"processing_date": "2012-10-11",
		"fulltexts": map[string]any{
			"html": map[string]any{
				"pt": "http://www.scielo.br/scielo.php?script=sci_arttext&pid=S0034-89102010000400007&tlng=pt",
				"en": "http://www.scielo.br/scielo.php?script=sci_arttext&pid=S0034-89102010000400007&tlng=en",
			},
			"pdf": map[string]any{
				"pt": "http://www.scielo.br/pdf/rsp/v44n4/07.pdf",
				"en": "http://www.scielo.br/pdf/rsp/v44n4/en_07.pdf",
			},
		},
		"title": map[string]any{
			"v100": list(occ("_", "Revista de Saúde Pública")),
			"v150": list(occ("_", "Rev. Saúde Pública")),
			"v68":  list(occ("_", "RSP")),
			"v400": list(occ("_", "0034-8910")),
			"v435": list(occ("_", "0034-8910", "t", "PRINT"), occ("_", "1518-8787", "t", "ONLIN")),
			"v480": list(occ("_", "Faculdade de Saúde Pública da Universidade de São Paulo")),
			"v490": list(occ("_", "São Paulo")),
			"v854": list(occ("_", "PUBLIC, ENVIRONMENTAL & OCCUPATIONAL HEALTH")),
			"v851": list(occ("_", "SCIE"), occ("_", "SSCI")),
			"v441": list(occ("_", "Health Sciences")),
			"v350": list(occ("_", "pt"), occ("_", "en"), occ("_", "es")),
			"v690": list(occ("_", "http://www.scielo.br/rsp")),
		},
		"issue": map[string]any{
			"v31": list(occ("_", "44")),
			"v32": list(occ("_", "4")),
			"v65": list(occ("_", "20100800")),
			"v49": list(
				occ("c", "RSP030", "l", "pt", "t", "Artigos Originais"),
				occ("c", "RSP030", "l", "en", "t", "Original Articles"),
			),
		},
		"article": map[string]any{
			"v40":  list(occ("_", "pt")),
			"v71":  list(occ("_", "oa")),
			"v49":  list(occ("_", "RSP030")),
			"v880": list(occ("_", "S0034-89102010000400007")),
			"v237": list(occ("_", "10.1590/S0034-89102010000400007")),
			"v337": list(
				occ("d", "10.1590/S0034-89102010000400007", "l", "pt"),
				occ("d", "10.1590/S0034-89102010000400007.en", "l", "en"),
			),
			"v65": list(occ("_", "20100800")),
			"v112": list(occ("_", "20090514")),
			"v114": list(occ("_", "20100127")),
			"v14":  list(occ("f", "639", "l", "649")),
			"v12": list(
				occ("_", "Perfil de saúde de idosos", "l", "pt"),
				occ("_", "Health profile of the elderly", "l", "en"),
				occ("_", "Perfil de salud de ancianos", "l", "es"),
			),
			"v83": list(
				occ("a", "<p>OBJETIVO: Analisar o perfil de saúde.</p>", "l", "pt"),
				occ("a", "<p>OBJECTIVE: To analyze the health profile.</p>", "l", "en"),
				occ("a", "OBJETIVO: Analizar el perfil de salud.", "l", "es"),
			),
			"v85": list(
				occ("k", "Idoso", "l", "pt"),
				occ("k", "Saúde", "l", "pt"),
				occ("k", "Aged", "l", "en"),
				occ("k", "Health", "l", "en"),
				occ("k", "Anciano", "l", "es"),
			),
			"v10": list(
				occ("s", "Lima-Costa", "n", "Maria Fernanda", "r", "ND", "1", "A01", "k", "0000-0002-1825-0097"),
				occ("s", "Facchini", "n", "Luiz Augusto", "r", "ND", "1", "a02 A03"),
				occ("s", "Matos", "n", "Divane Leite", "r", "ND", "1", "A03"),
			),
			"v70": list(
				occ("i", "A01", "_", "Fundação Oswaldo Cruz", "1", "Centro de Pesquisas René Rachou", "c", "Belo Horizonte", "s", "MG", "p", "Brasil"),
				occ("i", "A02", "_", "Universidade Federal de Pelotas", "c", "Pelotas", "s", "RS", "p", "Brasil"),
				occ("i", "A03", "_", "Universidade Federal de Minas Gerais", "c", "Belo Horizonte", "p", "Brasil"),
			),
			"v240": list(
				occ("i", "A01", "_", "Fundação Oswaldo Cruz", "p", "BR"),
				occ("i", "A02", "_", "Universidade Federal de Pelotas", "p", "BR"),
				occ("i", "A03", "_", "Universidade Federal de Minas Gerais", "p", "BR"),
			),
			"v58": list(occ("_", "Conselho Nacional de Desenvolvimento Científico e Tecnológico")),
			"v60": list(occ("_", "402355/2005-0")),
		},
		"body": map[string]any{
			"pt": "<html><body><p>Texto completo em português.</p></body></html>",
			"en": "<html><body><p>Full text in English.</p></body></html>",
		},
		"citations": Citations(23),
	}
}

// Minimal returns the sparsest record that is still an article.
func Minimal() map[string]any {
	return map[string]any{
		"code":    "S0000-00002000000000001",
		"article": map[string]any{},
	}
}
