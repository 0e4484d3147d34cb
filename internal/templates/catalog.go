package templates

// builtin is the catalog shipped with the binary.
var builtin = []Template{
	{
		ID:          "code-debug",
		Title:       "Debug Code",
		Description: "Help identify and fix bugs in code",
		Template:    "Debug this code and explain what's wrong:\n\n```\n{code}\n```\n\nIdentify the issue, explain why it occurs, and provide a corrected version.",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-refactor",
		Title:       "Refactor Code",
		Description: "Improve code quality and readability",
		Template:    "Refactor this code for better readability, performance, and maintainability:\n\n```\n{code}\n```\n\nExplain the improvements made.",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-explain",
		Title:       "Explain Code",
		Description: "Get a detailed explanation of code",
		Template:    "Explain this code in detail, including its purpose, how it works, and any important patterns used:\n\n```\n{code}\n```",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-generate",
		Title:       "Generate Code",
		Description: "Generate code from requirements",
		Template:    "Generate {language} code that accomplishes the following:\n\n{requirements}\n\nInclude comments explaining key parts and handle edge cases.",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-review",
		Title:       "Code Review",
		Description: "Get a thorough code review",
		Template:    "Review this code for potential issues, security vulnerabilities, and improvements:\n\n```\n{code}\n```\n\nProvide specific, actionable feedback.",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-tests",
		Title:       "Write Tests",
		Description: "Generate unit tests for code",
		Template:    "Write comprehensive unit tests for this code:\n\n```\n{code}\n```\n\nCover edge cases and common scenarios. Use {framework} testing framework.",
		Category:    CategoryCoding,
	},
	{
		ID:          "code-convert",
		Title:       "Convert Code",
		Description: "Convert code between languages",
		Template:    "Convert this {source_language} code to {target_language}:\n\n```\n{code}\n```\n\nMaintain the same functionality and follow {target_language} best practices.",
		Category:    CategoryCoding,
	},

	{
		ID:          "write-email",
		Title:       "Write Email",
		Description: "Compose a professional email",
		Template:    "Write a {tone} email about {topic}.\n\nContext: {context}\n\nKey points to include:\n- {point1}\n- {point2}",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-document",
		Title:       "Write Document",
		Description: "Create a structured document",
		Template:    "Write a {type} document about {topic}.\n\nTarget audience: {audience}\nTone: {tone}\nLength: {length}\n\nKey sections to cover: {sections}",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-creative",
		Title:       "Creative Writing",
		Description: "Generate creative content",
		Template:    "Write a {type} about {topic}.\n\nStyle: {style}\nTone: {tone}\nLength: approximately {length} words\n\nInclude these elements: {elements}",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-summarize",
		Title:       "Summarize Text",
		Description: "Create a concise summary",
		Template:    "Summarize the following text in {length} format:\n\n{text}\n\nFocus on: {focus}\nInclude key takeaways and main points.",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-rewrite",
		Title:       "Rewrite Text",
		Description: "Improve or adapt existing text",
		Template:    "Rewrite this text to be more {quality}:\n\n{text}\n\nMaintain the core message while improving {aspect}.",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-proofread",
		Title:       "Proofread",
		Description: "Check for errors and improvements",
		Template:    "Proofread this text for grammar, spelling, and style:\n\n{text}\n\nProvide corrections and suggestions for improvement.",
		Category:    CategoryWriting,
	},
	{
		ID:          "write-outline",
		Title:       "Create Outline",
		Description: "Generate a structured outline",
		Template:    "Create a detailed outline for a {type} about {topic}.\n\nTarget audience: {audience}\nMain objective: {objective}\nKey points to cover: {points}",
		Category:    CategoryWriting,
	},

	{
		ID:          "analyze-data",
		Title:       "Analyze Data",
		Description: "Get insights from data",
		Template:    "Analyze this data and provide insights:\n\n{data}\n\nFocus on: {focus}\nProvide statistical analysis, trends, and actionable recommendations.",
		Category:    CategoryAnalysis,
	},
	{
		ID:          "analyze-research",
		Title:       "Research Topic",
		Description: "Deep dive into a topic",
		Template:    "Research {topic} and provide a comprehensive analysis.\n\nInclude:\n- Background and context\n- Key findings\n- Different perspectives\n- Implications and conclusions\n\nFocus areas: {focus}",
		Category:    CategoryAnalysis,
	},
	{
		ID:          "analyze-compare",
		Title:       "Compare Options",
		Description: "Compare and contrast choices",
		Template:    "Compare {option1} vs {option2} for {use_case}.\n\nConsider these factors:\n- {factor1}\n- {factor2}\n- {factor3}\n\nProvide a clear recommendation with reasoning.",
		Category:    CategoryAnalysis,
	},
	{
		ID:          "analyze-pros-cons",
		Title:       "Pros and Cons",
		Description: "Evaluate advantages and disadvantages",
		Template:    "Analyze the pros and cons of {topic}.\n\nContext: {context}\n\nProvide a balanced assessment with:\n- Key advantages\n- Potential drawbacks\n- Overall recommendation",
		Category:    CategoryAnalysis,
	},
	{
		ID:          "analyze-strategy",
		Title:       "Strategic Analysis",
		Description: "Analyze strategy and planning",
		Template:    "Provide a strategic analysis for {objective}.\n\nCurrent situation: {situation}\nGoals: {goals}\nConstraints: {constraints}\n\nInclude actionable steps and risk assessment.",
		Category:    CategoryAnalysis,
	},
	{
		ID:          "analyze-feedback",
		Title:       "Analyze Feedback",
		Description: "Extract insights from feedback",
		Template:    "Analyze this feedback and extract key insights:\n\n{feedback}\n\nIdentify:\n- Common themes\n- Sentiment patterns\n- Actionable improvements\n- Priority areas",
		Category:    CategoryAnalysis,
	},
}
