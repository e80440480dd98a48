package commands

import (
	"context"
	"math/rand"
	"strings"
)

// KnowledgeService looks up a free-form question in an external knowledge
// base and returns a formatted answer, or ok=false when nothing matched
type KnowledgeService interface {
	Lookup(ctx context.Context, question string) (answer string, ok bool, err error)
}

// predefinedAnswers maps known questions to curated answers. Exact matches
// win; otherwise a keyword overlap is accepted.
var predefinedAnswers = map[string]string{
	"ما هو أفضل برنامج للتواصل الاجتماعي": "في رأيي، أفضل برنامج للتواصل الاجتماعي يعتمد على احتياجاتك. واتساب ممتاز للمحادثات، وتويتر للأخبار، وانستغرام للصور، وتيك توك للفيديوهات القصيرة، وفيسبوك للتواصل مع الأصدقاء والعائلة. 📱✨",
	"كم عمرك": "أنا بوت ذكاء اصطناعي، تم إنشائي حديثًا لخدمتك! لا أملك عمرًا محددًا مثل البشر، ولكني أتطور وأتعلم باستمرار. 🤖⚡",
	"ما هي أفضل لغة برمجة": "لا توجد لغة برمجة 'أفضل' بشكل مطلق! اختيار اللغة يعتمد على المشروع. Python مناسبة للمبتدئين، JavaScript للويب، Java للتطبيقات الشاملة، C++ للأداء العالي. الأفضل هي اللغة التي تحل مشكلتك بكفاءة. 💻🔍",
	"كيف أتعلم البرمجة": "لتعلم البرمجة، ابدأ بلغة سهلة مثل Python، استخدم منصات مثل Codecademy أو freeCodeCamp، حل مشاكل حقيقية تهمك، انضم لمجتمعات البرمجة، وتذكر أن الممارسة المستمرة هي مفتاح الإتقان! 🚀👨‍💻",
	"ما هو أفضل هاتف ذكي": "أفضل هاتف ذكي يختلف حسب احتياجاتك! آيفون ممتاز للنظام البيئي المتكامل، سامسونج للميزات المتقدمة والشاشات، جوجل بيكسل للكاميرا وتجربة أندرويد النقية. فكر في ميزانيتك واحتياجاتك قبل الاختيار. 📱⚡",
	"كيف أتعلم اللغة الإنجليزية": "لتعلم الإنجليزية: استمع لمحتوى أصلي (أفلام/موسيقى)، استخدم تطبيقات مثل Duolingo، مارس المحادثة مع متحدثين أصليين، اقرأ كتبًا بسيطة، احفظ كلمات جديدة يوميًا، وتذكر أن الاستمرارية هي المفتاح! 🌍📚",
	"ما هي عاصمة مصر": "عاصمة مصر هي القاهرة، وهي أكبر مدينة في العالم العربي وإفريقيا، وتعتبر مركزًا ثقافيًا وسياسيًا هامًا في المنطقة. تأسست عام 969 ميلادية، وتضم العديد من المعالم التاريخية مثل الأهرامات والمتحف المصري والقلعة وخان الخليلي. 🇪🇬🏙️",
	"من هو مخترع الهاتف": "مخترع الهاتف هو ألكسندر جراهام بيل، الذي سجل براءة اختراعه في عام 1876. كان بيل عالمًا اسكتلنديًا أمريكيًا عمل أيضًا في مجالات التعليم والطيران. ابتكر الهاتف أثناء محاولته تطوير جهاز لمساعدة الصم، حيث كان معلماً للصم وكانت زوجته أيضاً من الصم. ☎️🔍",
	"كم عدد كواكب المجموعة الشمسية": "المجموعة الشمسية تتكون من 8 كواكب رسمية: عطارد، الزهرة، الأرض، المريخ، المشتري، زحل، أورانوس، ونبتون. بلوتو تم إعادة تصنيفه ككوكب قزم في عام 2006. يُعتبر المشتري أكبر كواكب المجموعة الشمسية، بينما عطارد هو أصغرها وأقربها للشمس. 🪐🌌",
	"ما هو أكبر محيط في العالم": "المحيط الهادئ هو أكبر وأعمق محيط في العالم، يغطي مساحة تبلغ حوالي 165.2 مليون كيلومتر مربع، أي حوالي ثلث سطح الأرض. يحده قارات آسيا وأستراليا من الغرب والأمريكتين من الشرق، ويحتوي على أعمق نقطة في قاع البحار (خندق ماريانا) التي يبلغ عمقها حوالي 11 كيلومترًا. 🌊🌏",
	"كيف أحافظ على صحتي": "للحفاظ على صحتك: تناول طعامًا متوازنًا، مارس الرياضة بانتظام (150 دقيقة أسبوعيًا)، نم 7-8 ساعات، اشرب كثيرًا من الماء، قلل التوتر، تجنب التدخين والكحول، وقم بفحوصات طبية دورية. أيضاً، حافظ على صحتك العقلية من خلال ممارسة التأمل وتخصيص وقت للأنشطة التي تحبها. الصحة كنز! 💪🥗",
	"ما هو أطول نهر في العالم": "نهر النيل هو أطول نهر في العالم، يبلغ طوله حوالي 6,650 كيلومترًا. يمر عبر 11 دولة أفريقية ويصب في البحر المتوسط. يُعتبر النيل حيوياً للحضارة المصرية القديمة والحديثة، وكان يُطلق عليه 'هبة مصر' نظراً لدوره في الزراعة والحياة في المنطقة. 🌊🌍",
	"ما هي مصر": "مصر هي دولة عربية تقع في الركن الشمالي الشرقي من قارة أفريقيا، ولها امتداد آسيوي في شبه جزيرة سيناء. عاصمتها القاهرة، وتُعرف بأنها مهد الحضارة الفرعونية العريقة التي امتدت لأكثر من 5000 سنة. تضم مصر العديد من المعالم التاريخية أبرزها الأهرامات وأبو الهول والمعابد الفرعونية، وتتميز بموقع استراتيجي حيث تربط بين قارتي أفريقيا وآسيا، ويمر بها نهر النيل أطول أنهار العالم. 🇪🇬🏛️",
	"من هو محمد صلاح": "محمد صلاح هو لاعب كرة قدم مصري مشهور عالمياً، وُلد في 15 يونيو 1992 في قرية نجريج بمحافظة الغربية. يلعب حالياً مع نادي ليفربول الإنجليزي ومنتخب مصر. لُقّب بـ'الفرعون المصري' و'مو صلاح'، وحقق العديد من الإنجازات منها الفوز بدوري أبطال أوروبا والدوري الإنجليزي، وحصل على جائزة هداف الدوري الإنجليزي عدة مرات. يُعتبر صلاح رمزاً رياضياً ومصدر إلهام للشباب في العالم العربي. ⚽🇪🇬",
	"ما هي لغة البرمجة بايثون": "بايثون (Python) هي لغة برمجة عالية المستوى، سهلة التعلم، تتميز بقواعد بسيطة ومقروءة. طُورت في أواخر الثمانينات بواسطة غيدو فان روسوم، وسُميت على اسم فرقة مونتي بايثون الكوميدية. تستخدم في مجالات متعددة مثل تطوير الويب، الذكاء الاصطناعي، علم البيانات، وأتمتة المهام. تتميز بمكتبات غنية مثل NumPy وPandas وTensorFlow، ولها مجتمع داعم كبير. وهي من أكثر لغات البرمجة شعبية وطلباً في سوق العمل حالياً. 🐍💻",
	"كيف أتعلم القرآن": "لتعلم القرآن الكريم: ابدأ بتعلم قراءة الحروف العربية والتجويد الأساسي، استعن بمعلم مؤهل أو دورات متخصصة في المساجد أو عبر الإنترنت، استخدم تطبيقات تعليمية مثل 'القرآن المعلم'، خصص وقتاً يومياً للتلاوة والمراجعة، ابدأ بسور قصيرة مثل جزء عم، استمع لقراءات القراء المشهورين، شارك في حلقات تحفيظ، واستخدم المصحف الملون بأحكام التجويد. الاستمرارية والصبر مفتاح النجاح في رحلة تعلم كتاب الله. 📖🕌",
	"ما هي فوائد الرياضة": "الرياضة تقوي القلب والعضلات، تحسن المزاج بإطلاق هرمونات السعادة، تخفض خطر الإصابة بأمراض مزمنة مثل السكري والضغط، تحسن النوم، تزيد من الطاقة، تساعد في التحكم بالوزن، تقوي المناعة، وتعزز الثقة بالنفس. 30 دقيقة يومياً كافية للحصول على فوائد صحية كبيرة! 🏃‍♂️💪",
	"كيف أقلل من التوتر": "لتقليل التوتر: مارس التنفس العميق والتأمل، خصص وقتاً للاسترخاء، تمرن بانتظام، تناول غذاءً صحياً، احصل على قسط كافٍ من النوم، حدد أولوياتك، تعلم قول لا، ابتعد عن الكافيين والكحول، واعتن بهواية تحبها. تذكر أن طلب المساعدة من الأصدقاء أو المختصين ليس ضعفاً بل قوة. 😌🧘‍♂️",
	"ما هو الذكاء الاصطناعي": "الذكاء الاصطناعي هو فرع من علوم الحاسوب يهتم بإنشاء أنظمة قادرة على تنفيذ مهام تتطلب ذكاءً بشرياً، مثل التعلم واتخاذ القرارات وحل المشكلات والتعرف على الأنماط. يشمل تقنيات مثل تعلم الآلة والشبكات العصبية العميقة، ويستخدم في مجالات متعددة كالطب والتمويل والروبوتات والسيارات ذاتية القيادة. 🤖🧠",
	"كيف أنشئ موقع إلكتروني": "لإنشاء موقع إلكتروني: أولاً، حدد هدف موقعك وجمهورك. اختر اسم نطاق وخدمة استضافة مناسبة. يمكنك استخدام منصات سهلة مثل WordPress أو Wix للبدء دون برمجة، أو تعلم HTML، CSS، وJavaScript لبناء موقع من الصفر. اهتم بتصميم بسيط وسهل التصفح، واجعل موقعك متوافقاً مع الأجهزة المحمولة. لا تنسَ تحسين الموقع لمحركات البحث (SEO). 🌐💻",
}

// fallbackAnswers are generic replies used when nothing else matched
var fallbackAnswers = []string{
	"أعتقد أن ذلك ممكن! يمكنك تجربته أو الاستعانة بالأوامر للمساعدة 😊",
	"بالتأكيد يمكنني محاولة مساعدتك في ذلك. جرب استخدام أحد أوامري المتاحة في '.اوامر'",
	"هذا سؤال جيد! أنا بوت بسيط ولكني أحاول المساعدة قدر الإمكان ✨",
	"أنا موجود هنا لمساعدتك! إذا كان سؤالك متعلقًا بإحدى وظائفي، فأنا سعيد بالمساعدة 🌟",
	"ممم، دعني أفكر... هذا سؤال مثير للاهتمام! يمكنك معرفة المزيد عن قدراتي بكتابة '.اوامر'",
	"أنا بوت متعدد المهام! يمكنني المساعدة في تنزيل الفيديوهات، إنشاء الملصقات، وأكثر من ذلك 🚀",
	"هذا سؤال جيد! للأسف ليس لدي معلومات كافية للإجابة عليه بدقة. يمكنك البحث عنه على الإنترنت للحصول على معلومات أكثر تفصيلاً.",
	"يبدو سؤالًا مثيرًا للاهتمام، لكن معرفتي محدودة في هذا المجال. يمكنك طرح أسئلة أخرى ربما أستطيع الإجابة عليها بشكل أفضل.",
	"أنا أحاول دائمًا مساعدتك قدر الإمكان، لكن هذا السؤال خارج نطاق معرفتي الحالية. هل هناك شيء آخر يمكنني مساعدتك به؟",
}

// QuestionAnswerer answers free-form questions addressed to the bot:
// curated answers first, then the external knowledge base, then a random
// fallback. It never fails user-visibly; knowledge-base errors degrade to
// the fallback pool.
type QuestionAnswerer struct {
	knowledge KnowledgeService
	pick      func(n int) int
}

// NewQuestionAnswerer creates the question answerer. knowledge may be nil
// when no knowledge-base key is configured.
func NewQuestionAnswerer(knowledge KnowledgeService) *QuestionAnswerer {
	return &QuestionAnswerer{
		knowledge: knowledge,
		pick:      rand.Intn,
	}
}

// Answer resolves a question to a reply
func (a *QuestionAnswerer) Answer(ctx context.Context, question string) string {
	question = strings.TrimSpace(question)

	if answer, ok := predefinedAnswers[question]; ok {
		return answer
	}
	if answer, ok := a.keywordMatch(question); ok {
		return answer
	}
	if a.knowledge != nil {
		if answer, ok, err := a.knowledge.Lookup(ctx, question); err == nil && ok {
			return answer
		}
	}
	return fallbackAnswers[a.pick(len(fallbackAnswers))]
}

// keywordMatch accepts a curated answer when the question contains the
// known question (or vice versa), or shares any keyword longer than three
// characters with it
func (a *QuestionAnswerer) keywordMatch(question string) (string, bool) {
	if question == "" {
		return "", false
	}
	for known, answer := range predefinedAnswers {
		if strings.Contains(question, known) || strings.Contains(known, question) {
			return answer, true
		}
		for _, word := range strings.Fields(known) {
			if len([]rune(word)) > 3 && strings.Contains(question, word) {
				return answer, true
			}
		}
	}
	return "", false
}
