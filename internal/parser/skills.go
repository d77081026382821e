package parser

import (
	"regexp"
	"strings"
)

// skillVocabulary 技能词表，按类别组织
// 扫描顺序即此处的声明顺序，保证结果可复现；条目全部小写
var skillVocabulary = []string{
	// 编程语言
	"python", "java", "javascript", "typescript", "c++", "c#", "c sharp",
	"ruby", "php", "swift", "kotlin", "go", "golang", "rust", "scala",
	"r", "matlab", "perl", "dart", "objective-c", "shell", "bash",
	"powershell", "vba", "assembly",

	// Web技术
	"react", "angular", "vue", "vue.js", "svelte", "next.js", "nuxt",
	"node.js", "express", "django", "flask", "fastapi", "spring",
	"asp.net", "laravel", "symfony", "rails", "ruby on rails",
	"html", "html5", "css", "css3", "sass", "scss", "less",
	"tailwind", "bootstrap", "material ui", "jquery", "webpack",
	"vite", "babel",

	// 移动开发
	"android", "ios", "react native", "flutter", "xamarin", "ionic",
	"cordova", "swiftui",

	// 数据库
	"sql", "mysql", "postgresql", "postgres", "mongodb", "redis",
	"elasticsearch", "cassandra", "oracle", "sql server", "sqlite",
	"dynamodb", "firebase", "mariadb", "neo4j", "couchdb",

	// 云与DevOps
	"aws", "amazon web services", "azure", "microsoft azure", "gcp",
	"google cloud", "docker", "kubernetes", "k8s", "jenkins",
	"terraform", "ansible", "puppet", "chef", "vagrant",
	"ci/cd", "circleci", "travis ci", "gitlab ci", "github actions",
	"cloudformation", "serverless", "lambda", "ec2", "s3",

	// 版本控制
	"git", "github", "gitlab", "bitbucket", "svn", "mercurial",

	// 数据科学与机器学习
	"machine learning", "deep learning", "artificial intelligence",
	"ai", "ml", "nlp", "computer vision", "data science",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas",
	"numpy", "matplotlib", "seaborn", "opencv", "spacy",
	"hugging face", "transformers", "bert", "gpt",

	// 测试
	"unit testing", "jest", "mocha", "pytest", "junit", "selenium",
	"cypress", "testng", "jasmine", "karma",

	// 方法论与实践
	"agile", "scrum", "kanban", "devops", "tdd", "bdd",
	"microservices", "rest api", "restful", "graphql", "soap",
	"oauth", "jwt", "authentication", "authorization",

	// 其他工具
	"jira", "confluence", "slack", "trello", "asana",
	"postman", "insomnia", "swagger", "apache", "nginx",
	"linux", "unix", "windows server", "vim", "emacs",
	"vs code", "visual studio", "intellij", "eclipse", "pycharm",
}

// 展示为全大写的缩写词
var upperSkills = map[string]bool{
	"html": true, "css": true, "sql": true, "aws": true, "gcp": true,
	"api": true, "nlp": true, "ai": true, "ml": true,
}

// skillEntry 预编译的技能匹配项
type skillEntry struct {
	keyword string
	display string
	pattern *regexp.Regexp
}

// skillEntries 在包初始化时编译，此后只读
var skillEntries = buildSkillEntries()

func buildSkillEntries() []skillEntry {
	entries := make([]skillEntry, 0, len(skillVocabulary))
	for _, skill := range skillVocabulary {
		entries = append(entries, skillEntry{
			keyword: skill,
			display: displayForm(skill),
			// 词边界保证整词匹配，多词短语作为字面量整体匹配
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(skill) + `\b`),
		})
	}
	return entries
}

// displayForm 技能的规范展示形式
func displayForm(skill string) string {
	switch {
	case upperSkills[skill]:
		return strings.ToUpper(skill)
	case skill == "c#" || skill == "c sharp":
		return "C#"
	case skill == "c++":
		return "C++"
	case strings.Contains(skill, "."):
		// node.js、vue.js 这类框架名保持原样
		return skill
	default:
		return strings.ToUpper(skill[:1]) + skill[1:]
	}
}

// SkillExtractor 基于固定词表的技能提取器
type SkillExtractor struct{}

// NewSkillExtractor 创建技能提取器
func NewSkillExtractor() *SkillExtractor {
	return &SkillExtractor{}
}

// Extract 提取文本中出现的技能
// 结果按词表扫描顺序排列（而非文本出现顺序），大小写不敏感地去重，
// 保留首次匹配条目的展示形式
func (e *SkillExtractor) Extract(text string) []string {
	textLower := strings.ToLower(text)

	seen := make(map[string]bool)
	var found []string
	for _, entry := range skillEntries {
		if !entry.pattern.MatchString(textLower) {
			continue
		}
		key := strings.ToLower(entry.display)
		if seen[key] {
			continue
		}
		seen[key] = true
		found = append(found, entry.display)
	}
	return found
}
