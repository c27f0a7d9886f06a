package disease

import (
	"regexp"
	"strings"
)

// Info is a knowledge-base entry for one disease class.
type Info struct {
	Explanation string
	Treatment   string
	Prevention  []string
}

var knowledgeBase = map[string]Info{
	"Apple_scab": {
		Explanation: "A common fungal disease causing dark, scabby spots on leaves and fruit, leading to premature leaf drop.",
		Treatment:   "Apply fungicides like Captan or Myclobutanil during the growing season. Remove and destroy fallen leaves.",
		Prevention:  []string{"Plant resistant varieties", "Prune to improve air circulation", "Rake and remove fallen leaves in autumn"},
	},
	"Tomato_Early_blight": {
		Explanation: "Fungal disease causing dark concentric-ring spots on lower leaves that spread upward.",
		Treatment:   "Apply fungicides like Chlorothalonil or Mancozeb. Remove affected lower leaves.",
		Prevention:  []string{"Mulch to prevent soil splash", "Stake plants for airflow", "Rotate crops yearly"},
	},
	"Tomato_Late_blight": {
		Explanation: "A highly contagious disease causing dark, water-soaked patches on leaves and fruit.",
		Treatment:   "Immediate application of copper fungicides. Destroy infected plants immediately.",
		Prevention:  []string{"Use certified disease-free seedlings", "Avoid overhead watering", "Eliminate cull piles"},
	},
	"Potato_Early_blight": {
		Explanation: "Fungal disease causing 'target-like' concentric rings on older leaves.",
		Treatment:   "Apply fungicides like Chlorothalonil or Mancozeb. Ensure adequate soil fertility.",
		Prevention:  []string{"Crop rotation", "Avoid overhead watering", "Remove potato refuse"},
	},
	"Potato_Late_blight": {
		Explanation: "A highly contagious disease (the cause of the Irish Potato Famine). Causes dark, water-soaked patches on leaves.",
		Treatment:   "Immediate application of copper fungicides. Destroy infected plants immediately.",
		Prevention:  []string{"Use certified disease-free seed potatoes", "Avoid planting near tomatoes", "Eliminate cull piles"},
	},
	"Corn_Common_rust": {
		Explanation: "Fungal disease causing reddish-brown pustules on both sides of the leaves.",
		Treatment:   "Rarely requires treatment unless severe. Foliar fungicides can be used if caught early.",
		Prevention:  []string{"Plant resistant corn hybrids", "Early planting to avoid peak rust season"},
	},
	"Corn_Northern_Leaf_Blight": {
		Explanation: "Causes large, cigar-shaped grayish-green lesions on leaves.",
		Treatment:   "Foliar fungicides are effective if applied at the first sign of symptoms.",
		Prevention:  []string{"Crop rotation (2 years away from corn)", "Clean tillage", "Resistant hybrids"},
	},
	"Rice_Blast": {
		Explanation: "Fungal disease producing diamond-shaped lesions on leaves that can kill entire tillers.",
		Treatment:   "Apply Tricyclazole-based fungicides at the first sign of lesions.",
		Prevention:  []string{"Avoid excess nitrogen", "Use resistant varieties", "Maintain consistent flooding"},
	},
	"Tomato_healthy": {
		Explanation: "The tomato plant shows no signs of disease.",
		Treatment:   "No treatment required.",
		Prevention:  []string{"Even watering to prevent blossom end rot", "Stake plants for support", "Mulch for moisture"},
	},
}

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// lookup resolves a knowledge-base entry by normalized name, falling back to
// a partial match and then to a generic healthy/unknown entry.
func lookup(diseaseName string) Info {
	norm := multiUnderscore.ReplaceAllString(diseaseName, "_")
	norm = strings.NewReplacer("(", "", ")", "").Replace(norm)

	if info, ok := knowledgeBase[norm]; ok {
		return info
	}
	spaced := strings.ReplaceAll(norm, "_", " ")
	for key, info := range knowledgeBase {
		if strings.Contains(norm, key) || strings.Contains(spaced, strings.ReplaceAll(key, "_", " ")) {
			return info
		}
	}

	if strings.Contains(strings.ToLower(diseaseName), "healthy") {
		return Info{
			Explanation: "The plant appears to be healthy based on the visual assessment.",
			Treatment:   "No treatment required.",
			Prevention:  []string{"Regular monitoring for early detection", "Ensure proper soil nutrition", "Maintain appropriate watering schedule"},
		}
	}
	return Info{
		Explanation: "A potential issue has been detected but specific details are limited.",
		Treatment:   "Consult a local agricultural expert for a detailed diagnosis and treatment plan.",
		Prevention:  []string{"Isolate affected plants if possible", "Improve overall garden sanitation", "Avoid transferring soil or water from infected areas"},
	}
}
