package skill

// Curated skill vocabulary and alias tables. These are configuration data:
// populated once at init and treated as immutable for the process lifetime.

var Vocabulary = map[string]struct{}{}

var vocabularyList = []string{
	// Programming languages
	"python", "java", "javascript", "typescript", "c++", "c#", "c", "go", "rust", "kotlin",
	"swift", "php", "ruby", "scala", "r", "matlab", "perl", "shell", "bash", "powershell",

	// Web
	"html", "css", "react", "vue", "angular", "svelte", "sveltekit", "node.js", "express",
	"django", "flask", "fastapi", "spring", "laravel", "asp.net", "jquery", "bootstrap",
	"sass", "less", "webpack", "vite", "tailwind", "redux", "next.js", "nuxt.js",

	// Databases
	"sql", "postgresql", "mysql", "mongodb", "redis", "oracle", "sqlite", "cassandra",
	"elasticsearch", "dynamodb", "neo4j", "snowflake", "bigquery",

	// Cloud & DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "git", "ci/cd", "terraform",
	"ansible", "linux", "unix", "nginx", "apache", "prometheus", "grafana",

	// Data science & ML
	"machine learning", "deep learning", "artificial intelligence", "tensorflow", "pytorch",
	"scikit-learn", "pandas", "numpy", "data analysis", "data science", "nlp",
	"natural language processing", "xgboost", "lightgbm", "spark", "hadoop",

	// Tools
	"github", "gitlab", "bitbucket", "jira", "confluence", "slack", "agile", "scrum",
	"kanban", "figma", "sketch", "adobe", "photoshop", "illustrator", "postman", "swagger",
	"openapi",

	// Testing
	"testing", "unit testing", "integration testing", "test automation", "selenium",
	"jest", "pytest", "junit", "cypress",

	// Messaging
	"kafka", "rabbitmq",

	// Mobile
	"android", "ios", "react native", "flutter", "xamarin",

	// Other
	"api", "rest", "graphql", "microservices", "devops", "tdd", "bdd", ".net",
	"ux", "ui", "ui/ux", "design", "research", "analytics", "documentation",
	"process mapping", "stakeholder management", "project management", "leadership",
	"mentoring", "etl", "data engineering",
}

// Aliases map raw surface forms to their canonical key.
var Aliases = map[string]string{
	"nodejs":       "node.js",
	"node js":      "node.js",
	"reactjs":      "react",
	"react js":     "react",
	"vuejs":        "vue",
	"vue js":       "vue",
	"nextjs":       "next.js",
	"next js":      "next.js",
	"nuxtjs":       "nuxt.js",
	"nuxt js":      "nuxt.js",
	"svelte kit":   "sveltekit",
	"svelte-kit":   "sveltekit",
	"c++":          "c++",
	"cplusplus":    "c++",
	"c plus plus":  "c++",
	"c#":           "c#",
	"c sharp":      "c#",
	"dotnet":       ".net",
	"dot net":      ".net",
	".net":         ".net",
	"asp net":      "asp.net",
	"ci cd":        "ci/cd",
	"ci-cd":        "ci/cd",
	"ci / cd":      "ci/cd",
	"restful":      "rest",
	"rest api":     "rest",
	"restful api":  "rest",
	"postgres":     "postgresql",
	"postgre":      "postgresql",
	"mongo":        "mongodb",
	"k8s":          "kubernetes",
	"ml":           "machine learning",
	"dl":           "deep learning",
	"ai":           "artificial intelligence",
	"ui ux":        "ui/ux",
	"ux ui":        "ui/ux",
	"js":           "javascript",
	"ts":           "typescript",
	"py":           "python",
	"golang":       "go",
}

// DisplayNames hold canonical casing for keys the generic title-caser would
// get wrong.
var DisplayNames = map[string]string{
	"javascript":   "JavaScript",
	"typescript":   "TypeScript",
	"node.js":      "Node.js",
	"next.js":      "Next.js",
	"nuxt.js":      "Nuxt.js",
	"asp.net":      "ASP.NET",
	"c++":          "C++",
	"c#":           "C#",
	".net":         ".NET",
	"ci/cd":        "CI/CD",
	"api":          "API",
	"rest":         "REST",
	"graphql":      "GraphQL",
	"ui":           "UI",
	"ux":           "UX",
	"ui/ux":        "UI/UX",
	"html":         "HTML",
	"css":          "CSS",
	"sql":          "SQL",
	"nlp":          "NLP",
	"aws":          "AWS",
	"gcp":          "GCP",
	"qa":           "QA",
	"etl":          "ETL",
	"ios":          "iOS",
	"devops":       "DevOps",
	"postgresql":   "PostgreSQL",
	"mongodb":      "MongoDB",
	"mysql":        "MySQL",
	"xgboost":      "XGBoost",
	"lightgbm":     "LightGBM",
	"scikit-learn": "scikit-learn",
	"github":       "GitHub",
	"gitlab":       "GitLab",
	"bitbucket":    "Bitbucket",
}

var Acronyms = map[string]struct{}{
	"api": {}, "rest": {}, "sql": {}, "nlp": {}, "ui": {}, "ux": {},
	"qa": {}, "aws": {}, "gcp": {}, "tdd": {}, "bdd": {},
}

// knownKeys is the vocabulary plus every alias target.
var knownKeys = map[string]struct{}{}

func init() {
	for _, s := range vocabularyList {
		Vocabulary[s] = struct{}{}
		knownKeys[s] = struct{}{}
	}
	for _, target := range Aliases {
		knownKeys[target] = struct{}{}
	}
}

// Known reports whether key is in the vocabulary or is an alias target.
func Known(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// SurfaceForms returns every string the extractor should match directly:
// the vocabulary plus all alias surface forms.
func SurfaceForms() []string {
	out := make([]string, 0, len(Vocabulary)+len(Aliases))
	for s := range Vocabulary {
		out = append(out, s)
	}
	for s := range Aliases {
		out = append(out, s)
	}
	return out
}
