package service

import (
	"errors"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/repository"
	"quizhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedService installs the built-in category and question catalog. The
// routine is idempotent: existing rows are matched by name (categories)
// or by question text within a category, never duplicated or updated.
type SeedService struct {
	CategoryRepo *repository.CategoryRepository
	QuestionRepo *repository.QuestionRepository
}

func NewSeedService(categoryRepo *repository.CategoryRepository, questionRepo *repository.QuestionRepository) *SeedService {
	return &SeedService{CategoryRepo: categoryRepo, QuestionRepo: questionRepo}
}

type seedQuestion struct {
	category      string
	question      string
	options       []string
	correctAnswer int
	explanation   string
	difficulty    model.Difficulty
}

// Seed upserts the catalog and returns how many categories and
// questions were newly created.
func (s *SeedService) Seed() (categoriesCreated, questionsCreated int, err error) {
	ids := make(map[string]uint, len(seedCategories))
	for _, c := range seedCategories {
		existing, findErr := s.CategoryRepo.FindByName(c.Name)
		switch {
		case findErr == nil:
			ids[c.Name] = existing.ID
			continue
		case !errors.Is(findErr, gorm.ErrRecordNotFound):
			return categoriesCreated, questionsCreated, findErr
		}

		category := c
		if createErr := s.CategoryRepo.Create(&category); createErr != nil {
			return categoriesCreated, questionsCreated, createErr
		}
		ids[c.Name] = category.ID
		categoriesCreated++
	}

	for _, q := range seedQuestions {
		categoryID, ok := ids[q.category]
		if !ok {
			// 分类映射缺失只可能是种子数据本身不一致
			logger.Log.Warn("种子题目引用了未知分类", zap.String("category", q.category))
			continue
		}

		_, findErr := s.QuestionRepo.FindByCategoryIDAndText(categoryID, q.question)
		switch {
		case findErr == nil:
			continue
		case !errors.Is(findErr, gorm.ErrRecordNotFound):
			return categoriesCreated, questionsCreated, findErr
		}

		question := model.QuizQuestion{
			CategoryID:    categoryID,
			Question:      q.question,
			Options:       q.options,
			CorrectAnswer: q.correctAnswer,
			Explanation:   q.explanation,
			Difficulty:    q.difficulty,
		}
		if createErr := s.QuestionRepo.Create(&question); createErr != nil {
			return categoriesCreated, questionsCreated, createErr
		}
		questionsCreated++
	}

	return categoriesCreated, questionsCreated, nil
}

var seedCategories = []model.QuizCategory{
	{Name: "JavaScript", Description: "Core JavaScript concepts", Color: "#f7df1e", Icon: "Code"},
	{Name: "React", Description: "React framework fundamentals", Color: "#61dafb", Icon: "Brain"},
	{Name: "Node.js", Description: "Server-side JavaScript", Color: "#339933", Icon: "Server"},
	{Name: "Database", Description: "Database concepts and SQL", Color: "#336791", Icon: "Database"},
	{Name: "Web Security", Description: "Web security best practices", Color: "#ff6b6b", Icon: "Shield"},
	{Name: "API Design", Description: "RESTful API design principles", Color: "#4ecdc4", Icon: "Globe"},
	{Name: "Performance", Description: "Web performance optimization", Color: "#45b7d1", Icon: "Cpu"},
	{Name: "Testing", Description: "Software testing methodologies", Color: "#96ceb4", Icon: "Clock"},
}

var seedQuestions = []seedQuestion{
	{
		category: "JavaScript",
		question: "What is the difference between '==' and '===' in JavaScript?",
		options: []string{
			"== checks value and type, === checks only value",
			"== checks only value, === checks value and type",
			"Both check value and type",
			"Both check only value",
		},
		correctAnswer: 1,
		explanation:   "== performs type coercion and checks value, while === checks both value and type without coercion.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "JavaScript",
		question: "What is a closure in JavaScript?",
		options: []string{
			"A function that has access to variables in its outer scope",
			"A way to close browser tabs",
			"A method to end loops",
			"A type of array",
		},
		correctAnswer: 0,
		explanation:   "A closure is a function that has access to variables in its outer (enclosing) scope even after the outer function has returned.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "JavaScript",
		question: "What does 'this' keyword refer to in JavaScript?",
		options: []string{
			"Always refers to the global object",
			"Always refers to the function it's in",
			"Depends on how the function is called",
			"Always refers to the DOM element",
		},
		correctAnswer: 2,
		explanation:   "The 'this' keyword refers to the object that is currently executing the code, and its value depends on how the function is called.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "React",
		question: "What is the purpose of useState hook in React?",
		options: []string{
			"To manage global state",
			"To add state to functional components",
			"To handle side effects",
			"To optimize performance",
		},
		correctAnswer: 1,
		explanation:   "useState is a React hook that allows functional components to have state variables.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "React",
		question: "What is the virtual DOM in React?",
		options: []string{
			"A real DOM element",
			"A lightweight copy of the real DOM",
			"A browser API",
			"A JavaScript framework",
		},
		correctAnswer: 1,
		explanation:   "The virtual DOM is a lightweight copy of the real DOM that React uses to optimize rendering performance.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "React",
		question: "What is the difference between props and state?",
		options: []string{
			"Props are mutable, state is immutable",
			"Props are immutable, state is mutable",
			"Both are mutable",
			"Both are immutable",
		},
		correctAnswer: 1,
		explanation:   "Props are read-only and passed from parent components, while state is mutable and managed within the component.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Node.js",
		question: "What is the event loop in Node.js?",
		options: []string{
			"A loop that runs forever",
			"A mechanism that handles asynchronous operations",
			"A way to create infinite loops",
			"A debugging tool",
		},
		correctAnswer: 1,
		explanation:   "The event loop is a mechanism that allows Node.js to perform non-blocking I/O operations despite JavaScript being single-threaded.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Node.js",
		question: "What is the purpose of package.json?",
		options: []string{
			"To store user data",
			"To manage project dependencies and metadata",
			"To create HTML pages",
			"To run tests",
		},
		correctAnswer: 1,
		explanation:   "package.json contains project metadata and manages dependencies for Node.js projects.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "Node.js",
		question: "What does 'require' do in Node.js?",
		options: []string{
			"Makes HTTP requests",
			"Imports modules and files",
			"Creates new files",
			"Deletes files",
		},
		correctAnswer: 1,
		explanation:   "require is a function used to import modules and files in Node.js.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "Database",
		question: "What is a primary key in a database?",
		options: []string{
			"A key that opens the database",
			"A unique identifier for each record",
			"A foreign key reference",
			"A backup key",
		},
		correctAnswer: 1,
		explanation:   "A primary key is a unique identifier that uniquely identifies each record in a database table.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "Database",
		question: "What is the difference between SQL and NoSQL?",
		options: []string{
			"SQL is newer than NoSQL",
			"SQL uses structured data, NoSQL uses unstructured data",
			"SQL is faster than NoSQL",
			"NoSQL is always better than SQL",
		},
		correctAnswer: 1,
		explanation:   "SQL databases use structured, relational data, while NoSQL databases can handle unstructured data more flexibly.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Database",
		question: "What is normalization in databases?",
		options: []string{
			"Making data smaller",
			"Organizing data to reduce redundancy",
			"Speeding up queries",
			"Backing up data",
		},
		correctAnswer: 1,
		explanation:   "Normalization is the process of organizing data in a database to reduce redundancy and improve data integrity.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Web Security",
		question: "What is XSS (Cross-Site Scripting)?",
		options: []string{
			"A type of CSS attack",
			"Injecting malicious scripts into web pages",
			"A database attack",
			"A network protocol",
		},
		correctAnswer: 1,
		explanation:   "XSS is a security vulnerability that allows attackers to inject malicious scripts into web pages viewed by other users.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Web Security",
		question: "What is CSRF (Cross-Site Request Forgery)?",
		options: []string{
			"A type of virus",
			"Forcing users to perform unwanted actions",
			"A database attack",
			"A network protocol",
		},
		correctAnswer: 1,
		explanation:   "CSRF is an attack that forces authenticated users to perform unwanted actions on a website they're currently authenticated to.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Web Security",
		question: "What is the purpose of HTTPS?",
		options: []string{
			"To make websites faster",
			"To encrypt data transmission",
			"To store data securely",
			"To create backups",
		},
		correctAnswer: 1,
		explanation:   "HTTPS encrypts data transmission between the client and server, providing security and privacy.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "API Design",
		question: "What does REST stand for?",
		options: []string{
			"Remote State Transfer",
			"Representational State Transfer",
			"Remote Service Transfer",
			"Representational Service Transfer",
		},
		correctAnswer: 1,
		explanation:   "REST stands for Representational State Transfer, an architectural style for designing networked applications.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "API Design",
		question: "What HTTP status code represents 'Not Found'?",
		options: []string{
			"200",
			"404",
			"500",
			"403",
		},
		correctAnswer: 1,
		explanation:   "HTTP status code 404 represents 'Not Found', indicating that the requested resource could not be found.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "API Design",
		question: "What is the purpose of API versioning?",
		options: []string{
			"To make APIs faster",
			"To maintain backward compatibility",
			"To reduce costs",
			"To improve security",
		},
		correctAnswer: 1,
		explanation:   "API versioning allows developers to maintain backward compatibility while introducing new features or changes.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Performance",
		question: "What is lazy loading?",
		options: []string{
			"Loading all content at once",
			"Loading content only when needed",
			"Loading content slowly",
			"Loading content in the background",
		},
		correctAnswer: 1,
		explanation:   "Lazy loading is a technique that delays loading of non-critical resources until they are needed.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Performance",
		question: "What is caching?",
		options: []string{
			"Storing data temporarily for faster access",
			"Deleting old data",
			"Compressing data",
			"Backing up data",
		},
		correctAnswer: 0,
		explanation:   "Caching is storing data temporarily in a faster storage location to improve access speed.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "Performance",
		question: "What is the critical rendering path?",
		options: []string{
			"The fastest way to render",
			"The sequence of steps the browser takes to render a page",
			"A debugging tool",
			"A performance metric",
		},
		correctAnswer: 1,
		explanation:   "The critical rendering path is the sequence of steps the browser takes to convert HTML, CSS, and JavaScript into pixels on the screen.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Testing",
		question: "What is unit testing?",
		options: []string{
			"Testing the entire application",
			"Testing individual components in isolation",
			"Testing user interfaces",
			"Testing databases",
		},
		correctAnswer: 1,
		explanation:   "Unit testing involves testing individual components or functions in isolation to ensure they work correctly.",
		difficulty:    model.DifficultyEasy,
	},
	{
		category: "Testing",
		question: "What is the difference between unit tests and integration tests?",
		options: []string{
			"Unit tests are faster",
			"Unit tests test individual components, integration tests test component interactions",
			"Integration tests are easier to write",
			"Unit tests are more important",
		},
		correctAnswer: 1,
		explanation:   "Unit tests test individual components in isolation, while integration tests test how components work together.",
		difficulty:    model.DifficultyMedium,
	},
	{
		category: "Testing",
		question: "What is test-driven development (TDD)?",
		options: []string{
			"Writing tests after code",
			"Writing tests before writing code",
			"Writing code without tests",
			"Writing documentation first",
		},
		correctAnswer: 1,
		explanation:   "TDD is a development methodology where you write tests before writing the actual code.",
		difficulty:    model.DifficultyMedium,
	},
}
