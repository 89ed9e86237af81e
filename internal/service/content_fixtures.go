package service

import (
	"arrurru_training_backend/internal/model"
	"encoding/json"
)

// FixturesVersion tags the builtin content set. Bump it when the shipped
// pages change; the sync refreshes builtin rows by slug and never touches
// manager-authored pages.
const FixturesVersion = "2025-08-2"

const fixturesVersionKey = "content_fixtures_version"

type fixturePage struct {
	Section    model.ContentSection
	Title      string
	Slug       string
	Body       string
	OrderIndex int
	Exam       []model.ExamQuestion
	Test       []model.TestQuestion
}

func builtinPages() []fixturePage {
	return []fixturePage{
		{
			Section: model.SectionCodice,
			Title:   "Философия ARRURRU",
			Slug:    "philosophy",
			Body: `# Философия ARRURRU

ARRURRU — это не просто ресторан, это пространство, где каждая деталь продумана для создания уникального опыта.

## Наши ценности

1. **Исключительность** — мы создаём то, чего нет больше нигде
2. **Внимание к деталям** — каждый элемент важен
3. **Профессионализм** — мы мастера своего дела
4. **Аутентичность** — мы остаёмся собой

## Наша миссия

Создавать незабываемые впечатления через безупречный сервис и атмосферу закрытого клуба.`,
			OrderIndex: 1,
			Exam: []model.ExamQuestion{
				{
					ID:            "philosophy-q1",
					Question:      "Что является миссией ARRURRU?",
					Options:       []string{"Максимальная прибыль", "Незабываемые впечатления через безупречный сервис", "Быстрое обслуживание", "Низкие цены"},
					CorrectAnswer: 1,
				},
				{
					ID:            "philosophy-q2",
					Question:      "Какая из ценностей НЕ входит в философию ARRURRU?",
					Options:       []string{"Исключительность", "Экономия на деталях", "Профессионализм", "Аутентичность"},
					CorrectAnswer: 1,
				},
				{
					ID:            "philosophy-q3",
					Question:      "Какую атмосферу создаёт ARRURRU?",
					Options:       []string{"Фастфуда", "Столовой", "Закрытого клуба", "Кафетерия"},
					CorrectAnswer: 2,
				},
			},
		},
		{
			Section: model.SectionTrainingHall,
			Title:   "Модуль 1: Введение в сервис ARRURRU",
			Slug:    "module-1-intro",
			Body: `# Модуль 1: Введение в сервис ARRURRU

## Цель модуля
Понять основы философии обслуживания и стандарты ARRURRU.

## Темы для изучения
- История и концепция проекта
- Стандарты внешнего вида
- Базовые правила общения с гостями
- Территория и зонирование

## Практика
Прохождение по всем зонам ресторана с управляющим.`,
			OrderIndex: 1,
			Exam: []model.ExamQuestion{
				{
					ID:            "module1-q1",
					Question:      "С кем проходит практика по зонам ресторана?",
					Options:       []string{"Самостоятельно", "С управляющим", "С поваром", "С охраной"},
					CorrectAnswer: 1,
				},
				{
					ID:            "module1-q2",
					Question:      "Что входит в темы модуля?",
					Options:       []string{"Стандарты внешнего вида", "Бухгалтерия", "Закупки", "Логистика"},
					CorrectAnswer: 0,
				},
				{
					ID:            "module1-q3",
					Question:      "Какова цель первого модуля?",
					Options:       []string{"Изучить меню", "Понять основы философии обслуживания", "Сдать кассу", "Выучить коктейли"},
					CorrectAnswer: 1,
				},
			},
		},
		{
			Section: model.SectionTrainingHall,
			Title:   "Модуль 2: Работа с гостями",
			Slug:    "module-2-guests",
			Body: `# Модуль 2: Работа с гостями

## Цель модуля
Освоить стандарты приветствия, сопровождения и прощания с гостем.

## Темы для изучения
- Встреча и рассадка
- Презентация меню
- Работа с возражениями
- Прощание и обратная связь`,
			OrderIndex: 2,
			Exam: []model.ExamQuestion{
				{
					ID:            "module2-q1",
					Question:      "С чего начинается контакт с гостем?",
					Options:       []string{"С презентации меню", "С приветствия и встречи", "С расчёта", "С уборки стола"},
					CorrectAnswer: 1,
				},
				{
					ID:            "module2-q2",
					Question:      "Чем завершается визит гостя?",
					Options:       []string{"Прощанием и обратной связью", "Выносом счёта", "Уборкой зала", "Сменой скатерти"},
					CorrectAnswer: 0,
				},
			},
		},
		{
			Section: model.SectionTrainings,
			Title:   "Тренинг 1: Командообразование",
			Slug:    "training-1-team",
			Body: `# Тренинг 1: Командообразование

## Формат
- Длительность: 1 неполный день (4-5 часов)
- Участники: Весь персонал ARRURRU
- Формат: Интерактивные упражнения и практики

## Цели тренинга
1. Сплотить команду
2. Создать доверие между сотрудниками
3. Понять роль каждого в команде
4. Сформировать единое видение проекта

## Домашнее задание
Написать 3 идеи по улучшению работы команды.`,
			OrderIndex: 1,
			Test: []model.TestQuestion{
				{
					ID:       "training1-q1",
					Type:     model.QuestionSingle,
					Question: "Сколько длится тренинг?",
					Options:  []string{"1 час", "4-5 часов", "2 дня", "Неделя"},
					Required: true,
				},
				{
					ID:       "training1-q2",
					Type:     model.QuestionMultiple,
					Question: "Какие цели стоят перед тренингом?",
					Options:  []string{"Сплотить команду", "Создать доверие", "Увеличить выручку", "Сформировать единое видение"},
					Required: true,
				},
				{
					ID:       "training1-q3",
					Type:     model.QuestionEssay,
					Question: "Опишите 3 идеи по улучшению работы команды.",
					Required: true,
				},
			},
		},
		{
			Section: model.SectionStandards,
			Title:   "Стандарты внешнего вида",
			Slug:    "appearance-standards",
			Body: `# Стандарты внешнего вида

## Униформа
- Чёрная рубашка/блузка (предоставляется рестораном)
- Чёрные брюки/юбка (классический крой)
- Чёрная закрытая обувь (кожаная, без каблука выше 5 см)

## Причёска
- Волосы чистые, уложенные
- Длинные волосы собраны
- Никаких ярких цветов

## Аксессуары
- Минимальные украшения
- Только классические часы
- Запрещены: большие серьги, браслеты, кольца (кроме обручальных)

## Гигиена
- Чистые руки, ухоженные ногти
- Нейтральный макияж
- Лёгкий или нейтральный парфюм`,
			OrderIndex: 1,
			Exam: []model.ExamQuestion{
				{
					ID:            "appearance-q1",
					Question:      "Какая обувь допустима по стандарту?",
					Options:       []string{"Кроссовки", "Чёрная закрытая кожаная обувь", "Сандалии", "Любая тёмная"},
					CorrectAnswer: 1,
				},
				{
					ID:            "appearance-q2",
					Question:      "Какие украшения разрешены?",
					Options:       []string{"Большие серьги", "Браслеты", "Классические часы", "Крупные кольца"},
					CorrectAnswer: 2,
				},
				{
					ID:            "appearance-q3",
					Question:      "Каким должен быть парфюм?",
					Options:       []string{"Насыщенным", "Лёгким или нейтральным", "Любым", "Парфюм обязателен"},
					CorrectAnswer: 1,
				},
				{
					ID:            "appearance-q4",
					Question:      "Что делают с длинными волосами?",
					Options:       []string{"Распускают", "Собирают", "Красят", "Стригут"},
					CorrectAnswer: 1,
				},
			},
		},
	}
}

func (f fixturePage) toPage() model.ContentPage {
	page := model.ContentPage{
		Section:    f.Section,
		Title:      f.Title,
		Slug:       f.Slug,
		Body:       f.Body,
		OrderIndex: f.OrderIndex,
		Files:      json.RawMessage("[]"),
		Builtin:    true,
	}
	if len(f.Exam) > 0 {
		raw, _ := json.Marshal(f.Exam)
		page.HasExam = true
		page.Exam = raw
	}
	if len(f.Test) > 0 {
		raw, _ := json.Marshal(f.Test)
		page.HasTest = true
		page.Test = raw
	}
	return page
}
