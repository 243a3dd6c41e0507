package content

// QuizQuestion is one multiple-choice question in the compiled-in bank.
type QuizQuestion struct {
	ID                 int      `json:"id"`
	Prompt             string   `json:"prompt"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        string   `json:"explanation"`
}

// QuestionBank returns the protein synthesis question set in display order.
// The bank is static content; callers must not mutate it.
func QuestionBank() []QuizQuestion {
	return proteinSynthesisQuestions
}

var proteinSynthesisQuestions = []QuizQuestion{
	{
		ID:     1,
		Prompt: "What is the first step in protein synthesis?",
		Options: []string{
			"Translation",
			"Transcription",
			"Replication",
			"Post-translational modification",
		},
		CorrectOptionIndex: 1,
		Explanation:        "Transcription is the first step in protein synthesis where DNA is copied into mRNA. This process occurs in the nucleus of eukaryotic cells.",
	},
	{
		ID:     2,
		Prompt: "Which enzyme is responsible for synthesizing RNA during transcription?",
		Options: []string{
			"DNA polymerase",
			"RNA polymerase",
			"Helicase",
			"Ligase",
		},
		CorrectOptionIndex: 1,
		Explanation:        "RNA polymerase is the enzyme that synthesizes RNA by adding complementary RNA nucleotides to the DNA template strand.",
	},
	{
		ID:     3,
		Prompt: "What is the function of mRNA in protein synthesis?",
		Options: []string{
			"It carries amino acids to the ribosome",
			"It forms the structure of ribosomes",
			"It carries the genetic code from DNA to ribosomes",
			"It catalyzes peptide bond formation",
		},
		CorrectOptionIndex: 2,
		Explanation:        "mRNA (messenger RNA) carries the genetic information copied from DNA in the form of a series of three-base code words, each of which specifies a particular amino acid.",
	},
	{
		ID:     4,
		Prompt: "What is a codon?",
		Options: []string{
			"A sequence of three nucleotides in DNA",
			"A sequence of three nucleotides in mRNA that specifies an amino acid",
			"A type of RNA that carries amino acids",
			"A protein complex that reads mRNA",
		},
		CorrectOptionIndex: 1,
		Explanation:        "A codon is a sequence of three nucleotides in mRNA that specifies a particular amino acid or a signal to start or stop protein synthesis.",
	},
	{
		ID:     5,
		Prompt: "Which molecule brings amino acids to the ribosome during translation?",
		Options: []string{
			"mRNA",
			"tRNA",
			"rRNA",
			"DNA",
		},
		CorrectOptionIndex: 1,
		Explanation:        "tRNA (transfer RNA) molecules carry specific amino acids to the ribosome during translation, matching them to the corresponding codons in the mRNA.",
	},
	{
		ID:     6,
		Prompt: "Where does translation occur in eukaryotic cells?",
		Options: []string{
			"Nucleus",
			"Mitochondria",
			"Cytoplasm",
			"Golgi apparatus",
		},
		CorrectOptionIndex: 2,
		Explanation:        "Translation occurs in the cytoplasm of eukaryotic cells, either freely or bound to the rough endoplasmic reticulum, where ribosomes read mRNA to synthesize proteins.",
	},
	{
		ID:     7,
		Prompt: "What is the start codon for protein synthesis?",
		Options: []string{
			"UAG",
			"AUG",
			"UGA",
			"UAA",
		},
		CorrectOptionIndex: 1,
		Explanation:        "AUG is the start codon that initiates protein synthesis. It codes for the amino acid methionine in eukaryotes.",
	},
	{
		ID:     8,
		Prompt: "What happens during the elongation phase of translation?",
		Options: []string{
			"mRNA is synthesized",
			"The ribosome attaches to mRNA",
			"Amino acids are added one by one to the growing polypeptide chain",
			"The polypeptide chain is released from the ribosome",
		},
		CorrectOptionIndex: 2,
		Explanation:        "During elongation, the ribosome moves along the mRNA, adding amino acids one at a time to the growing polypeptide chain according to the codon sequence.",
	},
	{
		ID:     9,
		Prompt: "What are the stop codons in protein synthesis?",
		Options: []string{
			"AUG, GUG, UUG",
			"UAG, UAA, UGA",
			"AAA, AAG, GAA",
			"CCC, GGG, UUU",
		},
		CorrectOptionIndex: 1,
		Explanation:        "UAG, UAA, and UGA are the three stop codons that signal the termination of protein synthesis. They do not code for any amino acids.",
	},
	{
		ID:     10,
		Prompt: "What process may occur after a protein is synthesized?",
		Options: []string{
			"Transcription",
			"DNA replication",
			"Post-translational modification",
			"RNA splicing",
		},
		CorrectOptionIndex: 2,
		Explanation:        "Post-translational modification occurs after protein synthesis and involves chemical changes to the protein that can affect its function, localization, or stability.",
	},
}
