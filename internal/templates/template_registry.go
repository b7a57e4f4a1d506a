package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// Template names
const (
	EntityTemplate     = "entity"
	CreateDTOTemplate  = "create-dto"
	UpdateDTOTemplate  = "update-dto"
	ServiceTemplate    = "service"
	ControllerTemplate = "controller"
	ModuleTemplate     = "module"
	SeederTemplate     = "seeder"
)

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerEntityTemplates()
	registry.registerDTOTemplates()
	registry.registerServiceTemplates()
	registry.registerControllerTemplates()
	registry.registerModuleTemplates()
	registry.registerSeederTemplates()

	return registry
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

func (tr *TemplateRegistry) registerEntityTemplates() {
	tr.templates[EntityTemplate] = `{{.Imports}}
@Entity('{{.Table}}')
export class {{.Class}} {
  @PrimaryGeneratedColumn('uuid')
  id: string;
{{range .Columns}}
  {{.Decorator}}
  {{.Name}}: {{.Type}};
{{end}}{{range .Relations}}
{{range .Decorators}}  {{.}}
{{end}}  {{.Name}}: {{.Type}};
{{end}}
  @CreateDateColumn()
  createdAt: Date;

  @UpdateDateColumn()
  updatedAt: Date;

  @DeleteDateColumn()
  deletedAt: Date;
}
`
}

func (tr *TemplateRegistry) registerDTOTemplates() {
	tr.templates[CreateDTOTemplate] = `{{.Imports}}
export class {{.Name}} {
{{range $i, $p := .Properties}}{{if $i}}
{{end}}  {{$p.ApiProperty}}
{{range $p.Validators}}  {{.}}
{{end}}  {{$p.Name}}{{if $p.Optional}}?{{end}}: {{$p.Type}};
{{end}}}
`

	tr.templates[UpdateDTOTemplate] = `{{.Imports}}
export class {{.Name}} extends PartialType({{.CreateDTO}}) {}
`
}

func (tr *TemplateRegistry) registerServiceTemplates() {
	tr.templates[ServiceTemplate] = `{{.Imports}}
@Injectable()
export class {{.Service}} {
  constructor(
{{range .Injections}}    @InjectRepository({{.Entity}})
    private readonly {{.Repository}}: Repository<{{.Entity}}>,
{{end}}  ) {}

  async create({{.CreateVar}}: {{.CreateDTO}}): Promise<{{.Class}}> {
{{if .Relations}}    const { {{.IDFields}}, ...{{.Var}}Fields } = {{.CreateVar}};
    const {{.Var}} = this.{{.Repository}}.create({{.Var}}Fields);
{{range .Relations}}
    if ({{.IDs}} && {{.IDs}}.length > 0) {
{{if .Single}}      {{$.Var}}.{{.Name}} = (await this.{{.Repository}}.findBy({ id: In({{.IDs}}) }))[0];
{{else}}      {{$.Var}}.{{.Name}} = await this.{{.Repository}}.findBy({ id: In({{.IDs}}) });
{{end}}    }
{{end}}{{else}}    const {{.Var}} = this.{{.Repository}}.create({{.CreateVar}});
{{end}}
    return this.{{.Repository}}.save({{.Var}});
  }

  async findAll(page = 1, limit = 10): Promise<{ data: {{.Class}}[]; total: number; page: number; lastPage: number }> {
    const [data, total] = await this.{{.Repository}}.findAndCount({
      skip: (page - 1) * limit,
      take: limit,
      order: { createdAt: 'DESC' },
    });

    return {
      data,
      total,
      page,
      lastPage: Math.ceil(total / limit),
    };
  }

  async findOne(id: string): Promise<{{.Class}}> {
    const {{.Var}} = await this.{{.Repository}}.findOne({
      where: { id },
    });

    if (!{{.Var}}) {
      throw new NotFoundException(` + "`{{.Class}} with ID ${id} not found`" + `);
    }

    return {{.Var}};
  }

  async update(id: string, {{.UpdateVar}}: {{.UpdateDTO}}): Promise<{{.Class}}> {
    const {{.Var}} = await this.findOne(id);
{{if .Relations}}    const { {{.IDFields}}, ...{{.Var}}Fields } = {{.UpdateVar}};

    Object.assign({{.Var}}, {{.Var}}Fields);
{{range .Relations}}
{{if .Single}}    if ({{.IDs}} && {{.IDs}}.length > 0) {
      {{$.Var}}.{{.Name}} = (await this.{{.Repository}}.findBy({ id: In({{.IDs}}) }))[0];
    }
{{else}}    if ({{.IDs}}) {
      {{$.Var}}.{{.Name}} = {{.IDs}}.length > 0 ? await this.{{.Repository}}.findBy({ id: In({{.IDs}}) }) : [];
    }
{{end}}{{end}}{{else}}
    Object.assign({{.Var}}, {{.UpdateVar}});
{{end}}
    return this.{{.Repository}}.save({{.Var}});
  }

  async remove(id: string): Promise<void> {
    const {{.Var}} = await this.findOne(id);
    await this.{{.Repository}}.softRemove({{.Var}});
  }
}
`
}

func (tr *TemplateRegistry) registerControllerTemplates() {
	tr.templates[ControllerTemplate] = `{{.Imports}}
@ApiTags('{{.PluralClass}}')
@ApiBearerAuth()
@UseGuards(JwtAuthGuard, RolesGuard)
@Controller('{{.Route}}')
export class {{.Controller}} {
  constructor(private readonly {{.ServiceVar}}: {{.Service}}) {}

  @Post()
  @Roles('admin', 'user')
  @ApiOperation({ summary: 'Create a new {{.Model}}' })
  @ApiResponse({ status: 201, description: '{{.Class}} successfully created' })
  create(@Body() {{.CreateVar}}: {{.CreateDTO}}) {
    return this.{{.ServiceVar}}.create({{.CreateVar}});
  }

  @Get()
  @ApiOperation({ summary: 'Get all {{.Plural}}' })
  @ApiQuery({ name: 'page', required: false, type: Number })
  @ApiQuery({ name: 'limit', required: false, type: Number })
  @ApiResponse({ status: 200, description: 'Return all {{.Plural}}' })
  findAll(@Query('page') page = 1, @Query('limit') limit = 10) {
    return this.{{.ServiceVar}}.findAll(+page, +limit);
  }

  @Get(':id')
  @ApiOperation({ summary: 'Get {{.Model}} by ID' })
  @ApiResponse({ status: 200, description: 'Return {{.Model}}' })
  @ApiResponse({ status: 404, description: '{{.Class}} not found' })
  findOne(@Param('id') id: string) {
    return this.{{.ServiceVar}}.findOne(id);
  }

  @Patch(':id')
  @Roles('admin', 'user')
  @ApiOperation({ summary: 'Update {{.Model}}' })
  @ApiResponse({ status: 200, description: '{{.Class}} successfully updated' })
  update(@Param('id') id: string, @Body() {{.UpdateVar}}: {{.UpdateDTO}}) {
    return this.{{.ServiceVar}}.update(id, {{.UpdateVar}});
  }

  @Delete(':id')
  @Roles('admin')
  @ApiOperation({ summary: 'Delete {{.Model}}' })
  @ApiResponse({ status: 200, description: '{{.Class}} successfully deleted' })
  remove(@Param('id') id: string) {
    return this.{{.ServiceVar}}.remove(id);
  }
}
`
}

func (tr *TemplateRegistry) registerModuleTemplates() {
	tr.templates[ModuleTemplate] = `{{.Imports}}
@Module({
  imports: [TypeOrmModule.forFeature([{{join .Entities ", "}}])],
  controllers: [{{.Controller}}],
  providers: [{{.Service}}],
  exports: [{{.Service}}],
})
export class {{.Module}} {}
`
}

func (tr *TemplateRegistry) registerSeederTemplates() {
	tr.templates[SeederTemplate] = `{{.Imports}}
export async function {{.SeedFunc}}(dataSource: DataSource, count = {{.Count}}): Promise<{{.Class}}[]> {
  const {{.Repository}} = dataSource.getRepository({{.Class}});

  const {{.PluralVar}}: {{.Class}}[] = [];

  for (let i = 0; i < count; i++) {
    const {{.Var}} = {{.Repository}}.create({
{{range .Fields}}      {{.Name}}: {{.Expr}},
{{end}}    });

    {{.PluralVar}}.push({{.Var}});
  }

  await {{.Repository}}.save({{.PluralVar}});

  console.log(` + "`Seeded ${count} {{.Plural}}`" + `);

  return {{.PluralVar}};
}
`
}
