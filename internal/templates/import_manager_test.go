package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportManagerDeduplicates(t *testing.T) {
	im := NewImportManager()
	im.Add("typeorm", "Entity", "Column")
	im.Add("./entities/tag.entity", "Tag")
	im.Add("typeorm", "Column", "Entity", "")
	im.Add("", "Ignored")

	assert.True(t, im.Has("./entities/tag.entity", "Tag"))
	assert.False(t, im.Has("typeorm", "Tag"))

	assert.Equal(t, "import { Entity, Column } from 'typeorm';\nimport { Tag } from './entities/tag.entity';\n", im.GenerateImports())
}

func TestImportManagerWrapsLongLines(t *testing.T) {
	im := NewImportManager()
	im.Add("@nestjs/swagger", "ApiTags", "ApiOperation", "ApiResponse", "ApiBearerAuth", "ApiQuery")

	want := "import {\n  ApiTags,\n  ApiOperation,\n  ApiResponse,\n  ApiBearerAuth,\n  ApiQuery,\n} from '@nestjs/swagger';\n"
	assert.Equal(t, want, im.GenerateImports())
}

func TestImportManagerSkipsEmptyModules(t *testing.T) {
	im := NewImportManager()
	im.Add("typeorm")

	assert.Empty(t, im.GenerateImports())
}
