package naming

// reservedWords cannot name a binding in strict-mode TypeScript.
var reservedWords = setOf(
	"break", "case", "catch", "class", "const", "continue", "debugger", "default",
	"delete", "do", "else", "enum", "export", "extends", "false", "finally", "for",
	"function", "if", "import", "in", "instanceof", "new", "null", "return",
	"super", "switch", "this", "throw", "true", "try", "typeof", "var", "void",
	"while", "with",
	// strict mode
	"implements", "interface", "let", "package", "private", "protected",
	"public", "static", "yield", "await", "arguments", "eval",
)

// frameworkSymbols are imported by name or used as globals somewhere in the
// generated files. A model class with one of these names would shadow it.
var frameworkSymbols = setOf(
	// typeorm
	"Entity", "PrimaryGeneratedColumn", "Column", "CreateDateColumn",
	"UpdateDateColumn", "DeleteDateColumn", "OneToMany", "ManyToOne",
	"ManyToMany", "JoinTable", "In", "Repository", "DataSource",
	// @nestjs/common and @nestjs/typeorm
	"Injectable", "NotFoundException", "Controller", "Get", "Post", "Body",
	"Patch", "Param", "Delete", "Query", "UseGuards", "Module",
	"InjectRepository", "TypeOrmModule",
	// @nestjs/swagger
	"ApiProperty", "PartialType", "ApiTags", "ApiOperation", "ApiResponse",
	"ApiBearerAuth", "ApiQuery",
	// class-validator
	"IsString", "IsNumber", "IsBoolean", "IsNotEmpty", "IsOptional",
	// host guards and decorators
	"JwtAuthGuard", "RolesGuard", "Roles",
	// globals
	"Array", "Boolean", "Date", "Math", "Number", "Object", "Promise", "String",
)

// IsReservedWord reports whether s cannot be used as a variable name.
func IsReservedWord(s string) bool {
	return reservedWords[s]
}

// IsFrameworkSymbol reports whether a class named s would clash with a symbol
// the generated files import or rely on.
func IsFrameworkSymbol(s string) bool {
	return frameworkSymbols[s]
}

func setOf(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}
