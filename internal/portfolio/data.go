// Package portfolio holds the static content of the landing page.
package portfolio

import "slices"

type Skill struct {
	Name  string
	Level int // percent
}

type TimelineEntry struct {
	Years       string
	Title       string
	Subtitle    string
	Description string
}

type Project struct {
	Title        string
	Stack        []string
	Client       string
	Years        string
	Impact       string
	Role         string
	Confidential bool
	URL          string
}

type Service struct {
	Number      string
	Title       string
	Description string
}

type Certification struct {
	Name     string
	Subtitle string
}

type Profile struct {
	Name     string
	Email    string
	GitHub   string
	LinkedIn string
	Location string
}

var Owner = Profile{
	Name:     "Pedro Varela",
	Email:    "consultorvarela@gmail.com",
	GitHub:   "https://github.com/consultorvarela",
	LinkedIn: "https://www.linkedin.com/in/consultorvarela/",
	Location: "Honduras",
}

var (
	FrontendSkills = []Skill{
		{"React / Next.js", 90},
		{"TypeScript", 90},
		{"Tailwind CSS", 75},
		{"Angular", 80},
	}

	BackendSkills = []Skill{
		{"Python / Django / Flask", 95},
		{"Node.js", 90},
		{"PHP / Laravel", 70},
		{"ASP.net", 80},
	}

	MobileSkills = []Skill{
		{"Ionic", 90},
		{"React Native", 80},
		{"Java / Kotlin", 80},
		{"Swift", 50},
	}

	Databases = []string{"PostgreSQL", "MongoDB", "Redis", "Firebase", "MySQL", "Supabase"}

	Tools = []string{"Git & GitHub", "Docker", "AWS", "Vercel", "Jira", "Figma", "Linux", "CI/CD"}

	Marquee = []string{"React", "Node.js", "Python", "AWS"}
)

var Experience = []TimelineEntry{
	{
		Years:       "2021 - 2025",
		Title:       "Consultant - Lead Technology Architect & Digital Solutions Specialist",
		Subtitle:    "BID / Programa Ciudad Mujer",
		Description: "Desarrollo e implementación del ecosistema digital: plataformas INNOVA MUJER, INNOVA Tech Mujer, Conocimiento, Conecta e integración con SIRM. Stack: Python, JavaScript, PostgreSQL, MySQL, Nginx. Infraestructura: Linux/Windows, redes Fortinet y Cisco.",
	},
	{
		Years:       "2022 - 2025",
		Title:       "Freelance - Web Developer & Infrastructure Engineer",
		Subtitle:    "Centro de Estudios de la Mujer (CEM-H)",
		Description: "Desarrollo de funcionalidades web institucionales y gestión de infraestructura. Stack: WordPress, PHP, Python, JavaScript, MySQL. Infraestructura: Linux/Windows, redes Fortinet/Cisco, Git/GitHub.",
	},
	{
		Years:       "2020 - 2021",
		Title:       "Consultant - Senior Systems Analyst & Technical Advisor",
		Subtitle:    "Banco Interamericano de Desarrollo (BID)",
		Description: "Diagnóstico técnico y automatización de procesos operativos. Stack: Python, JavaScript, PostgreSQL. Infraestructura: Linux, Nginx, redes Fortinet/Cisco.",
	},
	{
		Years:       "2019 - 2020",
		Title:       "Consultant - Full-Stack Developer & Mobile Solutions Architect",
		Subtitle:    "USAID/GIZ - Secretaría de Derechos Humanos",
		Description: "Implementación de plataformas web (ODH, SIPNADH) y aplicaciones móviles de recolección de datos. Stack: Python, JavaScript, PostgreSQL, Nginx. Infraestructura: Linux, seguridad de red.",
	},
	{
		Years:       "2018 - 2019",
		Title:       "Freelance - Full-Stack Developer & Cloud DevOps Engineer",
		Subtitle:    "Fundación GLANF",
		Description: "Desarrollo de sistema administrativo y app móvil Android para seguimiento de proyectos. Stack: PHP, Java, SQLite, MySQL. Infraestructura: AWS, Linux.",
	},
	{
		Years:       "2016 - 2018",
		Title:       "Consultant - Software Developer & Government Systems Architect",
		Subtitle:    "MiAmbiente Honduras (PNUD)",
		Description: "Desarrollo de plataformas gubernamentales: SINIA, CESCCO, RETC, OCP. Stack: Python, JavaScript, PHP, MySQL. Infraestructura: Linux, redes Cisco.",
	},
}

var Education = []TimelineEntry{
	{
		Years:       "2022 - 2024",
		Title:       "Maestría en Administración de Proyectos",
		Subtitle:    "Universidad Tecnológica Centroamericana (UNITEC)",
		Description: "Programa acreditado por el Global Accreditation Center (GAC) del Project Management Institute (PMI). Planificación, dirección y evaluación de proyectos con estándares internacionales (PMI, SCRUM), gestión de riesgos, metodologías ágiles y preparación para la certificación PMP.",
	},
	{
		Years:       "2011 - 2015",
		Title:       "Ingeniería en Sistemas",
		Subtitle:    "Universidad Nacional Autónoma de Honduras (UNAH)",
		Description: "Formación integral en desarrollo de software, arquitectura de sistemas, bases de datos y gestión de proyectos tecnológicos.",
	},
	{
		Years:       "2008 - 2010",
		Title:       "Técnico en Computación",
		Subtitle:    "Instituto Técnico Honduras",
		Description: "Fundamentos de programación, redes, hardware y mantenimiento de sistemas informáticos.",
	},
}

var Projects = []Project{
	{"Plataforma INNOVA MUJER & SIRM", []string{"Python", "JavaScript", "PostgreSQL", "Linux"}, "BID - Programa Ciudad Mujer", "2021 - 2025", "Ecosistema digital integrado para 50K+ usuarias", "Consultor Especialista en Tecnología", false, ""},
	{"Observatorio de Derechos Humanos (ODH)", []string{"Python", "JavaScript", "PostgreSQL", "Nginx"}, "SEDH - USAID/DAI", "2019 - 2020", "Plataforma de visualización y recolección de datos nacional", "Arquitecto de Soluciones Full-Stack", false, "https://odh.sedh.gob.hn"},
	{"SIPNADH - Sistema de Políticas Públicas", []string{"Python", "JavaScript", "PostgreSQL", "Linux"}, "SEDH - GIZ", "2019", "Gestión digital de Plan Nacional de Acción en DDHH", "Lead Developer", false, "https://sipnadh.sedh.gob.hn/"},
	{"Sistema de Gestión Empresarial ERP", []string{"React", "Node.js", "PostgreSQL", "Docker"}, "Cliente Confidencial - Sector Retail", "2023", "Reducción del 40% en tiempo de procesamiento operativo", "Lead Fullstack Developer", true, ""},
	{"Sistema Nacional de Información Ambiental", []string{"Python", "JavaScript", "MySQL", "Linux"}, "MiAmbiente - PNUD", "2016 - 2018", "Portal gubernamental con 10+ módulos integrados", "Consultor en Desarrollo e Implementación", false, "http://www.miambiente.gob.hn"},
	{"RETC - Registro de Emisiones y Transferencias", []string{"Python", "JavaScript", "MySQL", "Nginx"}, "MiAmbiente/CESCCO - PNUD", "2016 - 2018", "Sistema nacional de monitoreo de contaminantes", "Diseñador Web & Desarrollador", false, "http://www.retchn.org/"},
	{"Sistema de Punto de Venta & Contabilidad", []string{"PHP", "Python", "PostgreSQL", "MySQL", "AWS"}, "Grupo Tecnológico CROP", "2020", "Suite empresarial con inventario y reportería avanzada", "Fullstack Developer", true, ""},
	{"App Móvil de Seguimiento de Proyectos", []string{"Java", "SQLite", "MySQL", "AWS"}, "Fundación GLANF", "2018 - 2019", "Control en campo de proyectos sociales con sincronización offline", "Desarrollador Android Full-Stack", false, ""},
	{"Plataforma de Encuestas sobre Cambio Climático", []string{"Python", "JavaScript", "MySQL", "Linux"}, "MiAmbiente/SINIA", "2016 - 2018", "Recolección de datos nacionales sobre sostenibilidad", "Desarrollador Full-Stack", false, "http://encuestas.miambiente.gob.hn/"},
	{"Sistema de Inventario IoT", []string{"Angular", "Python", "MongoDB", "AWS IoT"}, "Cliente Confidencial - Manufactura", "2021", "500+ sensores integrados, 99.9% uptime", "Fullstack Developer", true, ""},
	{"App Móvil de Logística en Tiempo Real", []string{"React Native", "Django", "PostgreSQL"}, "Cliente Confidencial - Logística", "2020", "50+ vehículos monitoreados, reducción 30% en tiempos", "Mobile Lead Developer", true, ""},
}

var Services = []Service{
	{"01", "Aplicaciones Web Fullstack", "Construyendo aplicaciones web complejas desde cero usando el stack MERN o Next.js."},
	{"02", "Desarrollo de APIs", "Diseñando APIs RESTful y GraphQL que son seguras, documentadas y escalables."},
	{"03", "Arquitectura en la Nube", "Desplegando y gestionando aplicaciones en AWS, Google Cloud o Vercel con pipelines CI/CD."},
}

var Certifications = []Certification{
	{"Cisco Certified", "Network Professional"},
	{"Google Cloud", "Certified Professional"},
	{"Microsoft Azure", "Certified Developer"},
}

// SkillGroup is a titled list of rated skills.
type SkillGroup struct {
	Key    string
	Skills []Skill
}

// SkillGroups returns the rated skill lists in display order.
func SkillGroups() []SkillGroup {
	return []SkillGroup{
		{"frontend", FrontendSkills},
		{"backend", BackendSkills},
		{"mobile", MobileSkills},
	}
}

// PublicProjects returns projects that may link to a live site.
func PublicProjects() []Project {
	return slices.DeleteFunc(slices.Clone(Projects), func(p Project) bool {
		return p.Confidential || p.URL == ""
	})
}
