package service

import "github.com/sinapsiscode/cursos-exam-backend/internal/model"

// Built-in catalog used when the store has never been seeded. One active
// placement exam plus one active exam per launch course (1–4).

func intPtr(v int) *int { return &v }

func noImages() []*string { return make([]*string, 4) }

func defaultExamCatalog() []model.ExamDefinition {
	return []model.ExamDefinition{
		{
			ID:           "initial-exam",
			CourseID:     nil,
			Type:         model.ExamTypeInitial,
			Title:        "Examen de Nivelación",
			Description:  "Evalúa tus conocimientos para obtener descuentos y puntos de bienvenida.",
			Duration:     20,
			Attempts:     1,
			PassingScore: 55,
			IsActive:     true,
			Questions:    defaultPlacementQuestions(),
		},
		{
			ID:           "course-1-exam",
			CourseID:     intPtr(1),
			Type:         model.ExamTypeCourse,
			Title:        "Examen Final: Fundamentos de Metalurgia",
			Description:  "Evaluación final del curso de fundamentos.",
			Duration:     30,
			Attempts:     3,
			PassingScore: 60,
			IsActive:     true,
			Questions: []model.Question{
				{
					ID:           "c1-q1",
					Question:     "¿Cuál es el principal objetivo de la metalurgia extractiva?",
					Options:      []string{"Obtener metales a partir de sus minerales", "Diseñar aleaciones ligeras", "Medir la dureza de los metales", "Fabricar piezas por fundición"},
					OptionImages: noImages(),
					Correct:      0,
					Area:         "metalurgia",
				},
				{
					ID:           "c1-q2",
					Question:     "¿Qué proceso separa minerales valiosos de la ganga usando burbujas de aire?",
					Options:      []string{"Lixiviación", "Flotación", "Tostación", "Electrólisis"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "metalurgia",
				},
				{
					ID:           "c1-q3",
					Question:     "La reducción del hierro en el alto horno utiliza principalmente:",
					Options:      []string{"Hidrógeno", "Carbono (coque)", "Aluminio", "Cloro"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "metalurgia",
				},
			},
		},
		{
			ID:           "course-2-exam",
			CourseID:     intPtr(2),
			Type:         model.ExamTypeCourse,
			Title:        "Examen Final: Seguridad Minera",
			Description:  "Evaluación final del curso de seguridad.",
			Duration:     25,
			Attempts:     3,
			PassingScore: 70,
			IsActive:     true,
			Questions: []model.Question{
				{
					ID:           "c2-q1",
					Question:     "¿Cuál es el primer paso ante un incidente en mina subterránea?",
					Options:      []string{"Continuar la operación", "Asegurar la zona y reportar", "Retirar el equipo", "Esperar instrucciones al final del turno"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "mineria",
				},
				{
					ID:           "c2-q2",
					Question:     "El equipo de protección personal mínimo en mina incluye:",
					Options:      []string{"Casco, lentes y botas de seguridad", "Solo casco", "Ropa de calle", "Guantes de látex"},
					OptionImages: noImages(),
					Correct:      0,
					Area:         "mineria",
				},
				{
					ID:           "c2-q3",
					Question:     "¿Qué gas es el principal riesgo de asfixia en labores subterráneas?",
					Options:      []string{"Oxígeno", "Monóxido de carbono", "Neón", "Argón"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "mineria",
				},
			},
		},
		{
			ID:           "course-3-exam",
			CourseID:     intPtr(3),
			Type:         model.ExamTypeCourse,
			Title:        "Examen Final: Geología General",
			Description:  "Evaluación final del curso de geología.",
			Duration:     30,
			Attempts:     3,
			PassingScore: 60,
			IsActive:     true,
			Questions: []model.Question{
				{
					ID:           "c3-q1",
					Question:     "¿Qué tipo de roca se forma por el enfriamiento del magma?",
					Options:      []string{"Sedimentaria", "Metamórfica", "Ígnea", "Orgánica"},
					OptionImages: noImages(),
					Correct:      2,
					Area:         "geologia",
				},
				{
					ID:           "c3-q2",
					Question:     "La escala de Mohs mide:",
					Options:      []string{"El peso específico", "La dureza de los minerales", "El brillo", "La radioactividad"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "geologia",
				},
				{
					ID:           "c3-q3",
					Question:     "¿Cuál de los siguientes es un mineral de cobre?",
					Options:      []string{"Calcopirita", "Cuarzo", "Yeso", "Halita"},
					OptionImages: noImages(),
					Correct:      0,
					Area:         "geologia",
				},
			},
		},
		{
			ID:           "course-4-exam",
			CourseID:     intPtr(4),
			Type:         model.ExamTypeCourse,
			Title:        "Examen Final: Procesamiento de Minerales",
			Description:  "Evaluación final del curso de procesamiento.",
			Duration:     35,
			Attempts:     3,
			PassingScore: 65,
			IsActive:     true,
			Questions: []model.Question{
				{
					ID:           "c4-q1",
					Question:     "La conminución comprende las etapas de:",
					Options:      []string{"Chancado y molienda", "Fusión y refinación", "Secado y filtrado", "Espesado y clarificado"},
					OptionImages: noImages(),
					Correct:      0,
					Area:         "metalurgia",
				},
				{
					ID:           "c4-q2",
					Question:     "¿Qué equipo clasifica partículas por tamaño en húmedo?",
					Options:      []string{"Hidrociclón", "Horno rotatorio", "Celda electrolítica", "Espectrómetro"},
					OptionImages: noImages(),
					Correct:      0,
					Area:         "metalurgia",
				},
				{
					ID:           "c4-q3",
					Question:     "La lixiviación con cianuro se usa principalmente para recuperar:",
					Options:      []string{"Hierro", "Oro", "Plomo", "Zinc"},
					OptionImages: noImages(),
					Correct:      1,
					Area:         "metalurgia",
				},
			},
		},
	}
}

// defaultPlacementQuestions is the built-in 10-question placement set
// spanning the three launch topic areas.
func defaultPlacementQuestions() []model.Question {
	return []model.Question{
		{
			ID:           "q1",
			Question:     "¿Qué es un mineral?",
			Options:      []string{"Un sólido inorgánico natural con composición definida", "Cualquier roca de color oscuro", "Un metal fundido", "Un compuesto orgánico"},
			OptionImages: noImages(),
			Correct:      0,
			Area:         "geologia",
		},
		{
			ID:           "q2",
			Question:     "¿Cuál es el metal más abundante en la corteza terrestre?",
			Options:      []string{"Hierro", "Cobre", "Aluminio", "Oro"},
			OptionImages: noImages(),
			Correct:      2,
			Area:         "geologia",
		},
		{
			ID:           "q3",
			Question:     "La ley de un mineral expresa:",
			Options:      []string{"Su antigüedad", "El contenido del elemento de interés", "Su dureza", "Su color en la raya"},
			OptionImages: noImages(),
			Correct:      1,
			Area:         "mineria",
		},
		{
			ID:           "q4",
			Question:     "¿Qué diferencia a una mina a tajo abierto de una subterránea?",
			Options:      []string{"La explotación se realiza desde la superficie", "Usa solo herramientas manuales", "No requiere voladura", "Produce únicamente carbón"},
			OptionImages: noImages(),
			Correct:      0,
			Area:         "mineria",
		},
		{
			ID:           "q5",
			Question:     "El acero es una aleación de:",
			Options:      []string{"Hierro y carbono", "Cobre y estaño", "Aluminio y zinc", "Plomo y plata"},
			OptionImages: noImages(),
			Correct:      0,
			Area:         "metalurgia",
		},
		{
			ID:           "q6",
			Question:     "¿Qué proceso concentra el mineral antes de la fundición?",
			Options:      []string{"Flotación", "Laminado", "Forjado", "Templado"},
			OptionImages: noImages(),
			Correct:      0,
			Area:         "metalurgia",
		},
		{
			ID:           "q7",
			Question:     "El bronce es una aleación de cobre con:",
			Options:      []string{"Zinc", "Estaño", "Níquel", "Titanio"},
			OptionImages: noImages(),
			Correct:      1,
			Area:         "metalurgia",
		},
		{
			ID:           "q8",
			Question:     "¿Qué instrumento mide la magnitud de un sismo?",
			Options:      []string{"Barómetro", "Sismógrafo", "Anemómetro", "Higrómetro"},
			OptionImages: noImages(),
			Correct:      1,
			Area:         "geologia",
		},
		{
			ID:           "q9",
			Question:     "La voladura en minería se utiliza para:",
			Options:      []string{"Fragmentar la roca", "Ventilar la mina", "Bombear agua", "Clasificar el mineral"},
			OptionImages: noImages(),
			Correct:      0,
			Area:         "mineria",
		},
		{
			ID:           "q10",
			Question:     "¿Cuál es el producto principal de la electrólisis del cobre?",
			Options:      []string{"Cobre blíster", "Cátodos de cobre refinado", "Concentrado de cobre", "Escoria"},
			OptionImages: noImages(),
			Correct:      1,
			Area:         "metalurgia",
		},
	}
}
