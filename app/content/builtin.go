package content

import "fmt"

// Builtin returns the catalog of generators shipped with the binary.
func Builtin() *Catalog {
	catalog := NewCatalog()
	for _, category := range builtinCategories() {
		if err := catalog.Register(category); err != nil {
			panic(fmt.Sprintf("builtin catalog: %v", err))
		}
	}
	return catalog
}

func builtinCategories() []Category {
	return []Category{
		writingCategory(),
		aiArtCategory(),
		blogCategory(),
		namesCategory(),
		persuasiveCategory(),
		characterCategory(),
		villainCategory(),
		heroCategory(),
		plotTwistCategory(),
		storyCategory(),
		poetryCategory(),
		dialogueCategory(),
	}
}

func writingCategory() Category {
	return Category{
		Key:         "writing",
		Title:       "Writing Prompt",
		Description: "Story starters built from an opening, a setting and a conflict.",
		Slots: map[string][]string{
			"openings": {
				"A letter arrives thirty years late",
				"The last lighthouse keeper receives a visitor",
				"A child finds a door that was never there before",
				"Two strangers wake up with each other's memories",
				"The town clock stops at the same minute every night",
				"An old map is found sewn inside a wedding dress",
				"A detective is hired to find herself",
				"The rain begins to fall upward",
			},
			"settings": {
				"in a floating city above the clouds",
				"in a small fishing village during a storm",
				"aboard a generation ship nearing its destination",
				"in a library that rearranges itself at midnight",
				"in a desert where the sand remembers footsteps",
				"in a crumbling palace on the edge of an empire",
				"in a quiet suburb hiding an ancient secret",
			},
			"conflicts": {
				"but someone is determined to keep the truth buried",
				"and the only witness cannot speak",
				"while a rival races to claim the prize first",
				"but every choice erases a memory",
				"and the clock is running out before dawn",
				"yet nobody believes the warning",
				"but trusting the wrong person means losing everything",
			},
			"characters": {
				"a retired cartographer",
				"a nervous apprentice magician",
				"a disgraced royal guard",
				"a botanist who talks to ghosts",
				"a twelve-year-old inventor",
				"a courier with no past",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{openings} {settings}, {conflicts}.",
				"Write about {characters} {settings}. {openings}, {conflicts}.",
				"{openings}. Your protagonist is {characters}, {conflicts}.",
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.35,
			Separator:   " ",
			Fragments: []string{
				"Bonus challenge: tell it in under 500 words.",
				"Bonus challenge: write it in second person.",
				"Bonus challenge: end on a line of dialogue.",
				"Bonus challenge: include a recurring object.",
				"Bonus challenge: tell it backwards.",
			},
		},
	}
}

func aiArtCategory() Category {
	return Category{
		Key:         "aiArt",
		Title:       "AI Art Prompt",
		Description: "Comma separated image prompts for diffusion models.",
		Slots: map[string][]string{
			"subjects": {
				"ethereal elven warrior with glowing tattoos",
				"abandoned space station overgrown with vines",
				"cyberpunk street market at night",
				"ancient dragon sleeping on a hoard of books",
				"lone astronaut sitting on a crescent moon",
				"steampunk owl with brass feathers",
				"underwater cathedral lit by bioluminescent fish",
				"fox spirit wandering a bamboo forest",
			},
			"techniques": {
				"digital painting",
				"oil on canvas",
				"watercolor illustration",
				"3D render",
				"charcoal sketch",
				"ukiyo-e woodblock print",
				"isometric pixel art",
			},
			"lighting": {
				"golden hour lighting",
				"volumetric god rays",
				"neon rim lighting",
				"soft diffused light",
				"dramatic chiaroscuro",
				"moonlit blue tones",
			},
			"composition": {
				"rule of thirds",
				"wide angle establishing shot",
				"close-up portrait",
				"symmetrical composition",
				"bird's eye view",
				"low angle hero shot",
			},
			"quality": {
				"highly detailed",
				"trending on artstation",
				"masterpiece",
				"intricate details",
				"sharp focus",
			},
			"artists": {
				"in the style of Alphonse Mucha",
				"in the style of Studio Ghibli",
				"in the style of Greg Rutkowski",
				"in the style of Moebius",
				"in the style of Hokusai",
				"in the style of Simon Stalenhag",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{subjects}, {techniques}, {lighting}, {composition}, {quality}, {artists}",
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.3,
			Separator:   ", ",
			Fragments: []string{
				"8k resolution",
				"ultra realistic",
				"award winning",
				"cinematic color grading",
				"octane render",
			},
		},
	}
}

func blogCategory() Category {
	return Category{
		Key:         "blog",
		Title:       "Blog Post Idea",
		Description: "Headlines for blog posts across common niches.",
		Slots: map[string][]string{
			"formats": {
				"The Ultimate Guide to",
				"10 Mistakes Everyone Makes With",
				"Why I Stopped Worrying About",
				"A Beginner's Roadmap to",
				"What Nobody Tells You About",
				"The Hidden Costs of",
				"How I Finally Mastered",
			},
			"topics": {
				"remote work",
				"sourdough baking",
				"personal finance in your twenties",
				"minimalist living",
				"learning a second language",
				"urban gardening",
				"building a morning routine",
				"freelance writing",
				"budget travel",
			},
			"audiences": {
				"for busy parents",
				"for complete beginners",
				"for introverts",
				"for small business owners",
				"for college students",
				"for people over fifty",
			},
			"angles": {
				"in 2025",
				"on a tight budget",
				"without burning out",
				"in just 30 days",
				"using only free tools",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{formats} {topics} {audiences}",
				"{formats} {topics} {angles}",
				"{formats} {topics} {audiences} {angles}",
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.3,
			Separator:   " ",
			Fragments: []string{
				"(include a downloadable checklist)",
				"(add a personal case study)",
				"(turn it into a video series)",
				"(interview an expert)",
			},
		},
	}
}

func namesCategory() Category {
	return Category{
		Key:         "names",
		Title:       "Fantasy Name",
		Description: "First and last names drawn from a single naming culture.",
		Strategy: CulturedNameStrategy{
			Cultures: []Culture{
				{
					Name:  "elven",
					First: []string{"Aelindra", "Thalion", "Elaria", "Faelar", "Sylvaris", "Lirael"},
					Last:  []string{"Moonwhisper", "Starbloom", "Silverleaf", "Dawnstrider", "Nightbreeze"},
				},
				{
					Name:  "dwarven",
					First: []string{"Thorin", "Brunhild", "Dagna", "Gimrik", "Hildra", "Borin"},
					Last:  []string{"Ironforge", "Stonehelm", "Deepdelver", "Anvilheart", "Goldbeard"},
				},
				{
					Name:  "nordic",
					First: []string{"Astrid", "Bjorn", "Sigrun", "Leif", "Freya", "Ragnar"},
					Last:  []string{"Stormborn", "Ulfsdottir", "Ravensong", "Frostvik", "Halvarsson"},
				},
				{
					Name:  "arcane",
					First: []string{"Zephyrine", "Malachar", "Isolde", "Cassius", "Morwen"},
					Last:  []string{"Ashgrove", "Blackthorn", "Vexley", "Quillfeather", "Emberlyn"},
				},
			},
		},
	}
}

func persuasiveCategory() Category {
	return Category{
		Key:         "persuasive",
		Title:       "Persuasive Essay Topic",
		Description: "Debatable essay topics from everyday and controversial lists.",
		Slots: map[string][]string{
			"everyday": {
				"Schools should start later in the morning",
				"Homework should be optional in primary school",
				"Every student should learn to cook",
				"Public libraries deserve more funding",
				"Cities should ban cars from their centers",
				"Standardized tests should be abolished",
				"A four-day school week would improve learning",
			},
			"controversial": {
				"Social media companies should verify user ages",
				"Voting should be mandatory",
				"Zoos should be phased out",
				"College education should be free",
				"Professional athletes are overpaid",
				"Artificial intelligence should be regulated like medicine",
			},
		},
		Strategy: FlatListStrategy{
			Slots: []string{"everyday", "controversial"},
		},
	}
}

func characterCategory() Category {
	return Category{
		Key:         "character",
		Title:       "Character",
		Description: "A character sheet with a name, role, trait and secret.",
		Slots: map[string][]string{
			"firstNames": {"Mara", "Tobias", "Ines", "Oren", "Calla", "Jasper", "Wren", "Idris"},
			"lastNames":  {"Hale", "Okafor", "Varga", "Lindqvist", "Moreau", "Tanaka", "Quill"},
			"ages":       {"17", "24", "31", "45", "58", "72"},
			"roles": {
				"a reluctant heir",
				"a traveling apothecary",
				"a former spy turned baker",
				"a ship's navigator",
				"a small-town journalist",
				"a museum night guard",
			},
			"traits": {
				"fiercely loyal",
				"quietly sarcastic",
				"endlessly curious",
				"stubborn to a fault",
				"warm but guarded",
				"recklessly brave",
			},
			"goals": {
				"to clear their family's name",
				"to find a missing sibling",
				"to open a tea shop by the sea",
				"to win back a lost love",
				"to map an uncharted island",
			},
			"secrets": {
				"they can hear lies",
				"they burned down their childhood home",
				"they are the heir to a fallen kingdom",
				"they have been dead for a year",
				"they forged their credentials",
			},
		},
		Strategy: StructuredStrategy{
			Fields: []Field{
				{Label: "Name", Template: "{firstNames} {lastNames}"},
				{Label: "Age", Template: "{ages}"},
				{Label: "Role", Template: "{roles}"},
				{Label: "Personality", Template: "{traits}"},
				{Label: "Goal", Template: "{goals}"},
				{Label: "Secret", Template: "{secrets}"},
			},
		},
	}
}

func villainCategory() Category {
	return Category{
		Key:         "villain",
		Title:       "Villain",
		Description: "An antagonist profile with motive, method and weakness.",
		Slots: map[string][]string{
			"titles": {"The Hollow King", "Lady Nightshade", "The Architect", "Doctor Vesper", "The Pale Shepherd", "Countess Ruin"},
			"archetypes": {
				"fallen hero",
				"mad scientist",
				"tyrannical ruler",
				"cult leader",
				"corporate mastermind",
				"vengeful spirit",
			},
			"motivations": {
				"believes the world must burn to be reborn",
				"seeks revenge for a betrayal long forgotten",
				"wants immortality at any price",
				"is convinced only they can bring order",
				"craves the recognition they were denied",
			},
			"methods": {
				"manipulates allies with half-truths",
				"commands an army of clockwork soldiers",
				"poisons the wells of the capital",
				"rewrites history books overnight",
				"bargains for souls in exchange for wishes",
			},
			"weaknesses": {
				"cannot resist a challenge to their intellect",
				"still loves the hero's mentor",
				"is bound by an ancient oath",
				"fears being forgotten",
				"trusts a lieutenant who plans to betray them",
			},
		},
		Strategy: StructuredStrategy{
			Fields: []Field{
				{Label: "Name", Template: "{titles}"},
				{Label: "Archetype", Template: "{archetypes}"},
				{Label: "Motivation", Template: "{motivations}"},
				{Label: "Method", Template: "{methods}"},
				{Label: "Weakness", Template: "{weaknesses}"},
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.3,
			Separator:   "\n",
			Fragments: []string{
				"Twist: they were the hero's first teacher.",
				"Twist: they are trying to prevent a greater evil.",
				"Twist: they do not know they are the villain.",
			},
		},
	}
}

func heroCategory() Category {
	return Category{
		Key:         "hero",
		Title:       "Hero",
		Description: "A protagonist profile with origin, power and flaw.",
		Slots: map[string][]string{
			"names": {"Kestrel", "Ardent", "Solenne", "Captain Marrow", "Ember Vale", "Nightjar"},
			"origins": {
				"raised by wolves in the northern wilds",
				"survived a lab accident",
				"the last of an order of knights",
				"a farmhand touched by a falling star",
				"born during a solar eclipse",
			},
			"powers": {
				"can bend light into solid shapes",
				"speaks every language ever spoken",
				"heals others by taking their pain",
				"moves between shadows",
				"controls the weather with song",
			},
			"flaws": {
				"cannot say no to someone in need",
				"is terrified of open water",
				"hides behind jokes",
				"refuses to ask for help",
				"loses memories every time the power is used",
			},
			"callings": {
				"to protect a city that fears them",
				"to return a stolen relic",
				"to end a war they accidentally started",
				"to train the next generation",
			},
		},
		Strategy: StructuredStrategy{
			Fields: []Field{
				{Label: "Name", Template: "{names}"},
				{Label: "Origin", Template: "{origins}"},
				{Label: "Power", Template: "{powers}"},
				{Label: "Flaw", Template: "{flaws}"},
				{Label: "Calling", Template: "{callings}"},
			},
		},
	}
}

func plotTwistCategory() Category {
	return Category{
		Key:         "plotTwist",
		Title:       "Plot Twist",
		Description: "Reveals that turn a story on its head.",
		Slots: map[string][]string{
			"reveals": {
				"The narrator",
				"The loyal sidekick",
				"The kindly mentor",
				"The victim",
				"The hero's own reflection",
				"The town itself",
			},
			"truths": {
				"has been dead the entire time",
				"orchestrated every event from the start",
				"is the long lost sibling of the villain",
				"is living the same day for the hundredth time",
				"was never human",
				"wrote the prophecy as a joke",
			},
			"consequences": {
				"and nothing that came before can be trusted.",
				"which means the real threat is still out there.",
				"and the hero must now choose a side.",
				"so the quest was pointless all along.",
				"and everyone already knew except the hero.",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{reveals} {truths}, {consequences}",
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.4,
			Separator:   " ",
			Fragments: []string{
				"Foreshadow it in the first chapter.",
				"Reveal it through a single overheard line.",
				"Let the reader realize it before the characters do.",
			},
		},
	}
}

func storyCategory() Category {
	return Category{
		Key:         "story",
		Title:       "Story Idea",
		Description: "Genre, protagonist and inciting incident combinations.",
		Slots: map[string][]string{
			"genres": {"A cozy mystery", "A space opera", "A gothic romance", "A heist thriller", "A coming-of-age drama", "A post-apocalyptic western"},
			"protagonists": {
				"a retired assassin",
				"a sentient houseplant",
				"an overworked substitute teacher",
				"twin sisters who never met",
				"a ghost who is afraid of people",
			},
			"incidents": {
				"inherits a haunted bakery",
				"accidentally becomes royalty",
				"finds a phone that receives calls from the future",
				"must deliver a package across a warzone",
				"wakes up in the wrong century",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{genres} where {protagonists} {incidents}.",
				"{genres} about {protagonists} who {incidents}.",
			},
			Weights: []float64{2, 1},
		},
	}
}

func poetryCategory() Category {
	return Category{
		Key:         "poetry",
		Title:       "Poetry Prompt",
		Description: "Form, subject and constraint for a poem.",
		Slots: map[string][]string{
			"forms":    {"a haiku", "a sonnet", "a villanelle", "a free verse poem", "a ghazal", "a prose poem"},
			"subjects": {"the first snowfall", "a grandmother's hands", "an empty train station", "the smell of rain", "a forgotten language", "city lights at 3am"},
			"constraints": {
				"without using the letter e",
				"where every line begins with a color",
				"that ends with a question",
				"using only one-syllable words",
				"addressed to your future self",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"Write {forms} about {subjects} {constraints}.",
			},
		},
		Enhancer: &Enhancer{
			Probability: 0.3,
			Separator:   " ",
			Fragments: []string{
				"Read it aloud before you revise.",
				"Then rewrite it in half the lines.",
				"Include one word you have never used before.",
			},
		},
	}
}

func dialogueCategory() Category {
	return Category{
		Key:         "dialogue",
		Title:       "Dialogue Prompt",
		Description: "Opening lines that start a scene in conversation.",
		Slots: map[string][]string{
			"lines": {
				"\"You weren't supposed to come back.\"",
				"\"I can explain the goat.\"",
				"\"Promise me you'll burn the letter.\"",
				"\"The stars are wrong tonight.\"",
				"\"We have exactly four minutes.\"",
				"\"That's not my reflection.\"",
			},
			"speakers": {
				"says the stranger at the door",
				"whispers the queen",
				"shouts the pilot over the alarms",
				"mutters your oldest friend",
				"says the child, very calmly",
			},
			"followUps": {
				"Continue the conversation for one page.",
				"Reply with a lie.",
				"The answer changes everything.",
				"Nobody else in the room reacts.",
			},
		},
		Strategy: TemplateStrategy{
			Templates: []string{
				"{lines} {speakers}. {followUps}",
			},
		},
	}
}
