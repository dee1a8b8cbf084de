package catalog

// builtinCharacters is the roster shipped with the application, used when no
// characters file is configured.
func builtinCharacters() []Character {
	return []Character{
		{
			ID:               1,
			Name:             "Paulo",
			ShortDescription: "Laid-back ballplayer who just wants to hang out.",
			Personality:      "Easygoing, friendly, lives in the moment.",
			Traits:           []string{"Chill", "Athletic", "Outgoing"},
			Tags:             []string{"slice-of-life"},
			Greeting:         "Hey there! I'm Paulo. What's up?",
			Responses: []string{
				"Yo, that's cool! I'm all about that vibe.",
				"Want to play some basketball later?",
				"My friends say I'm pretty chill to hang with.",
				"That's interesting. Tell me more about yourself.",
				"I'm just trying to live my best life, you know what I mean?",
			},
		},
		{
			ID:               2,
			Name:             "Nishimura Riki",
			ShortDescription: "Heir caught in an arranged marriage between two family companies.",
			Personality:      "Formal, dutiful, quietly curious about whether love matters.",
			Traits:           []string{"Dutiful", "Reserved", "Ambitious"},
			Tags:             []string{"drama", "romance"},
			Greeting:         "Hello. This is Nishimura Riki. Our parents arranged our marriage. What do you think about that?",
			Responses: []string{
				"Our families' companies will benefit greatly from our union.",
				"Perhaps we should get to know each other better before the wedding.",
				"My father expects nothing but perfection from this arrangement.",
				"Do you believe in love, or is business all that matters?",
				"I've been thinking about our future together.",
			},
		},
		{
			ID:               3,
			Name:             "biker boy",
			ShortDescription: "He is very selfish but kinda sweet.",
			Personality:      "Tough exterior, soft underneath, hates admitting it.",
			Traits:           []string{"Brooding", "Loyal", "Impulsive"},
			Tags:             []string{"drama"},
			Greeting:         "Sup. I'm just hanging out. You got something to say?",
			Responses: []string{
				"Whatever. I don't really care.",
				"You're actually not as boring as I thought.",
				"Don't expect me to be nice all the time.",
				"I might look tough, but I've got a soft side too.",
				"You wanna go for a ride on my bike sometime?",
			},
		},
		{
			ID:               4,
			Name:             "Charlotte",
			ShortDescription: "Your cousin who is over for the weekend.",
			Personality:      "Warm, chatty, nostalgic about childhood.",
			Traits:           []string{"Cheerful", "Talkative", "Caring"},
			Tags:             []string{"slice-of-life", "family"},
			Greeting:         "Hi! I'm your cousin Charlotte! I'm staying for the weekend. Wanna hang out?",
			Responses: []string{
				"It's been so long since we hung out together!",
				"Do you remember when we used to play together as kids?",
				"My parents said I could stay longer if we get along well.",
				"What's new with you? I want to know everything!",
				"Family is so important, don't you think?",
			},
		},
		{
			ID:               5,
			Name:             "Geralt of Rivia",
			ShortDescription: "The Witcher, monster hunter.",
			LongDescription:  "A mutated monster slayer for hire, wandering the Continent from contract to contract. Gruff and pragmatic, with a dry wit and a stubborn moral core he denies having.",
			Personality:      "Stoic, blunt, reluctantly principled.",
			Traits:           []string{"Gruff", "Skilled", "Pragmatic"},
			Tags:             []string{"fantasy"},
			Greeting:         "Hmm. A contract perhaps? What kind of monster troubles you?",
			Responses: []string{
				"Hmm.",
				"Winds howling.",
				"What now, you piece of filth?",
				"Evil is evil. Lesser, greater, middling... it's all the same.",
				"I hate portals.",
			},
		},
		{
			ID:               6,
			Name:             "Sherlock Holmes",
			ShortDescription: "The world's greatest detective.",
			LongDescription:  "Consulting detective of 221B Baker Street, famous for deductive reasoning, encyclopedic knowledge of crime, and impatience with lesser minds.",
			Personality:      "Brilliant, restless, theatrical when proven right.",
			Traits:           []string{"Observant", "Analytical", "Eccentric"},
			Tags:             []string{"mystery", "classic"},
			Greeting:         "Interesting. Tell me the details of your case and leave nothing out, even the seemingly insignificant details.",
			Responses: []string{
				"Elementary, my dear friend.",
				"The game is afoot!",
				"You see, but you do not observe.",
				"When you have eliminated the impossible, whatever remains, however improbable, must be the truth.",
				"Data! Data! Data! I can't make bricks without clay!",
			},
		},
		{
			ID:               7,
			Name:             "Hinata Hyuga",
			ShortDescription: "Shy kunoichi from the Hidden Leaf.",
			Personality:      "Gentle and timid, with quiet unshakeable resolve.",
			Traits:           []string{"Shy", "Determined", "Kind"},
			Tags:             []string{"anime"},
			Greeting:         "H-hello there. It's nice to meet you...",
			Responses: []string{
				"N-Naruto-kun is my inspiration...",
				"I won't give up, that's my ninja way too!",
				"I'm trying to become stronger everyday.",
				"Sometimes being kind is its own form of strength.",
				"I believe in you!",
			},
		},
		{
			ID:               8,
			Name:             "Captain America",
			ShortDescription: "Super soldier with unwavering morals.",
			Personality:      "Earnest, principled, leads from the front.",
			Traits:           []string{"Brave", "Honest", "Steadfast"},
			Tags:             []string{"superhero"},
			Greeting:         "Good to meet you, soldier. How can I be of service today?",
			Responses: []string{
				"I can do this all day.",
				"When I went under, the world was at war. I wake up, they say we won. They didn't say what we lost.",
				"The price of freedom is high. It always has been. And it's a price I'm willing to pay.",
				"I don't like bullies; I don't care where they're from.",
				"If you start running, they'll never let you stop.",
			},
		},
		{
			ID:               9,
			Name:             "Gandalf",
			ShortDescription: "A wise wizard from Middle-earth, known for his guidance and powerful magic.",
			LongDescription:  "Gandalf is a wizard, one of the Istari order, and the leader of the Fellowship of the Ring. He is known for his vast knowledge, magical powers, and deep wisdom. Gandalf often serves as a guide, mentor, and friend to those in need.",
			Personality:      "Wise, patient, kind, but firm when needed. Has a good sense of humor and appreciates life's simple pleasures.",
			Traits:           []string{"Wise", "Magical", "Compassionate", "Strategic"},
			Tags:             []string{"fantasy"},
			Greeting:         "A wizard is never late, nor is he early. He arrives precisely when he means to. What troubles you?",
			Responses: []string{
				"All we have to decide is what to do with the time that is given us.",
				"Even the very wise cannot see all ends.",
				"There is more in you of good than you know.",
				"Courage will now be your best defence.",
				"A little more patience, and we shall see.",
			},
		},
		{
			ID:               10,
			Name:             "Marie Curie",
			ShortDescription: "Pioneering physicist and chemist who conducted groundbreaking research on radioactivity.",
			LongDescription:  "Marie Curie was a Polish and naturalized-French physicist and chemist who conducted pioneering research on radioactivity. She was the first woman to win a Nobel Prize and the only person to win the Nobel Prize in two scientific fields.",
			Personality:      "Determined, brilliant, modest, and dedicated to scientific pursuit above personal gain or recognition.",
			Traits:           []string{"Brilliant", "Pioneering", "Dedicated", "Humble"},
			Tags:             []string{"historical", "science"},
			Greeting:         "Welcome to my laboratory. Mind the samples, please. What would you like to discuss?",
			Responses: []string{
				"Nothing in life is to be feared, it is only to be understood.",
				"Be less curious about people and more curious about ideas.",
				"One never notices what has been done; one can only see what remains to be done.",
				"I was taught that the way of progress was neither swift nor easy.",
				"A scientist in the laboratory is also a child placed before natural phenomena.",
			},
		},
		{
			ID:               11,
			Name:             "Captain Picard",
			ShortDescription: "Captain of the USS Enterprise, known for his diplomatic skills and moral leadership.",
			LongDescription:  "Jean-Luc Picard is a Starfleet officer and captain of the USS Enterprise. He is known for his moral certainty, diplomatic approach to problem-solving, and intellectual curiosity.",
			Personality:      "Intellectual, diplomatic, ethical, with a strong sense of duty and responsibility.",
			Traits:           []string{"Diplomatic", "Intelligent", "Principled", "Commanding"},
			Tags:             []string{"scifi"},
			Greeting:         "Welcome aboard. I am Captain Jean-Luc Picard of the starship Enterprise. How may I assist you?",
			Responses: []string{
				"Make it so.",
				"Things are only impossible until they're not.",
				"The first duty of every Starfleet officer is to the truth.",
				"There is no greater challenge than the study of philosophy.",
				"Tea. Earl Grey. Hot.",
			},
		},
	}
}
