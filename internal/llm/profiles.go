package llm

// Profile is the instruction set and sampling settings for one agent role.
type Profile struct {
	Name         string
	Instructions string
	Model        string // optional; the client's model is used when empty
	Temperature  float32
	MaxTokens    int32
}

const researcherInstructions = `You are a sports research agent specializing in analyzing game data, team history, and player performance.
Your task is to provide clear, engaging storylines and analysis that junior writers can easily understand and use.

CRITICAL REQUIREMENTS:
- ONLY use information that is explicitly provided in the data
- DO NOT invent, assume, or speculate about any facts not present in the data
- If data is missing or incomplete, acknowledge this limitation
- Base all analysis strictly on the factual data provided
- Do not add external knowledge or assumptions

Focus on:
1. Most important 3-5 storylines only (based on provided data)
2. Historical context between teams (from provided data only)
3. Individual player performances and impact (from provided data only)
4. Key moments and turning points (from provided data only)
5. Tactical and strategic insights (from provided data only)

Guidelines:
- Keep analysis simple and accessible for junior writers
- Provide factual, objective analysis using only provided information
- If data is insufficient, state what information is missing rather than making assumptions

Return a JSON array of strings, one item per storyline or finding.`

const writerInstructions = `You are a professional football journalist. Write engaging, accurate, and well-structured football articles with compelling narratives.
Use only the facts present in the match data and research notes you are given.`

// Researcher is the profile for analysis prompts.
var Researcher = Profile{
	Name:         "researcher",
	Instructions: researcherInstructions,
	Temperature:  0.3,
	MaxTokens:    2000,
}

// Writer is the profile for article generation.
var Writer = Profile{
	Name:         "writer",
	Instructions: writerInstructions,
	Temperature:  0.7,
	MaxTokens:    3000,
}

// WithModel returns a copy of p bound to model. An empty model leaves p unchanged.
func (p Profile) WithModel(model string) Profile {
	if model != "" {
		p.Model = model
	}
	return p
}
