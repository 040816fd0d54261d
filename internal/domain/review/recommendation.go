package review

// Recommendation is the outcome proposed on an annual review.
type Recommendation string

const (
	RecommendationNotSet         Recommendation = "not_set"
	RecommendationStayInPost     Recommendation = "stay_in_post"
	RecommendationSalaryIncrease Recommendation = "salary_increase"
	RecommendationPromotion      Recommendation = "promotion"
	RecommendationProbation      Recommendation = "probation"
	RecommendationTermination    Recommendation = "termination"
)

// Recommendations lists every defined recommendation in form order.
func Recommendations() []Recommendation {
	return []Recommendation{
		RecommendationNotSet,
		RecommendationStayInPost,
		RecommendationSalaryIncrease,
		RecommendationPromotion,
		RecommendationProbation,
		RecommendationTermination,
	}
}

var recommendationTitles = map[Recommendation]string{
	RecommendationNotSet:         "Recommendation Not Set",
	RecommendationStayInPost:     "Stay In Post",
	RecommendationSalaryIncrease: "Salary Increase",
	RecommendationPromotion:      "Promotion",
	RecommendationProbation:      "Probation",
	RecommendationTermination:    "Termination",
}

// Title returns the display name of the recommendation.
func (r Recommendation) Title() string {
	return recommendationTitles[r]
}

// Valid reports whether r is one of the defined recommendations.
func (r Recommendation) Valid() bool {
	_, ok := recommendationTitles[r]
	return ok
}

// ParseRecommendation maps a wire value onto a defined recommendation.
func ParseRecommendation(s string) (Recommendation, bool) {
	r := Recommendation(s)
	return r, r.Valid()
}
