package reply

// Rule maps a set of trigger keywords to a set of answer templates. Templates
// may contain {{name}} and {{greet}} placeholders.
type Rule struct {
	Keywords []string
	Answers  []string
}

// DefaultRules returns the fixed rule table. Order matters: the first rule
// whose keywords match wins.
func DefaultRules() []Rule {
	return []Rule{
		{
			Keywords: []string{"hej", "hello", "hi", "hejsa", "halløj"},
			Answers: []string{
				"Hvaså løve hvordan kan jeg hjælpe dig idag? 🤙🏾",
				"Halløj løve!",
				"Goddag løve – {{greet}}",
			},
		},
		{
			Keywords: []string{"farvel", "bye", "vi ses", "hej hej"},
			Answers: []string{
				"Farvel løve – vi snakkes! 👋",
				"Vi ses en anden gang, løve!",
				"Ha' en god dag, løve!",
			},
		},
		{
			Keywords: []string{
				"hvem er din skaber",
				"hvem the bossman",
				"hvem lavede dig",
				"hvem skabte dig",
				"hvem er din far",
				"hvem?",
			},
			Answers: []string{
				"Hani bassam er min skaber! 😎",
				"The bossman! 🤩",
			},
		},
		{
			Keywords: []string{"tak", "thank you", "mange tak"},
			Answers: []string{
				"Selv tak søster 🙏",
				"Det var så lidt løve!",
				"Altid en fornøjelse at hjælpe en shab i nød 😎",
			},
		},
		{
			Keywords: []string{"hvordan har du det", "hvordan går det"},
			Answers: []string{
				"Alhamdullilah bro 🤙🏽",
				"Jeg har det fint min ven – hvad med dig, {{name}}?",
				"Alt spiller her gamle, – {{greet}}",
			},
		},
		{
			Keywords: []string{"glad", "fantastisk", "super"},
			Answers: []string{
				"hor fedt at høre lan! 🌞",
				"Elsker at høre det – keep shining champ ✨",
			},
		},
		{
			Keywords: []string{"trist", "ked af det", "øv", "down"},
			Answers: []string{
				"Øv, det gør mig ked af det at høre BIG G, {{name}} 🫂",
				"Jeg er her for dig, elsket, Vil du snakke om det ❤️ ?",
			},
		},
		{
			Keywords: []string{"sulten", "mad", "pizza", "burger"},
			Answers: []string{
				"Uff kunne godt flække en 🍕 – hvad har du lyst til, {{name}}?",
				"En god burger kan redde dagen, {{name}} 🍔",
			},
		},
		{
			Keywords: []string{"træt", "søvnig"},
			Answers: []string{
				"Så er det måske tid til en lur løve 🦁",
				"Husk at passe på dig selv elskede, {{name}} – søvn er vigtigt!",
			},
		},
	}
}
