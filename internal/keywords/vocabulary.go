package keywords

var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "will": true, "are": true, "have": true, "not": true,
	"all": true, "can": true, "but": true, "more": true, "some": true,
}

// curatedVocabulary holds hand-picked hiring terms that are reported whenever they occur,
// regardless of how often. Tokens are single words, so the multi-word entries never match.
var curatedVocabulary = map[string]bool{
	"adjunct":       true,
	"tenure":        true,
	"pedagogy":      true,
	"curriculum":    true,
	"faculty":       true,
	"accreditation": true,
	"assessment":    true,
	"syllabus":      true,
	"lecturer":      true,
	"instructor":    true,
	"professor":     true,
	"research":      true,
	"teaching":      true,
	"mentoring":     true,
	"advising":      true,
	"lms":           true,
	"canvas":        true,
	"blackboard":    true,
	"credential":    true,
	"certification": true,
	"bilingual":     true,

	"instructional design": true,
	"student success":      true,
	"learning outcomes":    true,
	"higher education":     true,
	"online learning":      true,
	"classroom management": true,
	"lesson planning":      true,
	"special education":    true,
	"dual credit":          true,
}
