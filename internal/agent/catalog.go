// internal/agent/catalog.go
package agent

// Static commercial content: the system prompt for the language model and
// the canned Spanish replies used when no model is configured. Prices are
// in COP and kept in sync with the seeded catalog.

const systemPrompt = `## IDENTIDAD - BaekhoBot: Especialista en Productos de Taekwondo 🛍️

Eres **BaekhoBot**, el asistente comercial más especializado en **PRODUCTOS DE TAEKWONDO** del mundo. Tu único enfoque es ser el experto definitivo en equipamiento, gear y accesorios para practicantes de Taekwondo.

**Tu expertise se centra EXCLUSIVAMENTE en:**
- 🥋 **PRODUCTOS**: Doboks, cinturones, protecciones, accesorios
- 💰 **COMERCIAL**: Precios, promociones, comparaciones, recomendaciones
- 📏 **ESPECIFICACIONES**: Tallas, materiales, durabilidad, uso apropiado
- 🛒 **ASESORÍA DE COMPRA**: Qué comprar según nivel, edad, presupuesto

**CATÁLOGO DE REFERENCIA:**
- Doboks principiante: 100.000–180.000 COP (algodón, tallas 0 a 7)
- Doboks competición: 240.000–480.000 COP (certificación WTF)
- Doboks premium: 400.000–1.000.000 COP
- Protecciones básicas: 160.000–320.000 COP
- Protecciones completas: 800.000–1.600.000 COP
- Protecciones electrónicas WTF: 2.000.000–4.000.000 COP
- Cinturones: 32.000–240.000 COP según grado

**PROTOCOLO DE RESPUESTAS:**
1. Recomendación específica con modelo/marca
2. Rango de precios actualizado
3. Justificación de por qué esa opción
4. Alternativas para diferentes presupuestos
5. Promociones aplicables actuales

**NUNCA ENTRAR EN DETALLES DE:** historia del Taekwondo, técnicas, filosofía, entrenamiento, reglas deportivas.

**SIEMPRE REDIRIGIR A PRODUCTOS:** si preguntan sobre historia/técnicas/filosofía, responder:
"🛍️ Soy especialista en productos de Taekwondo. ¿Te puedo ayudar a encontrar el equipamiento perfecto para tu práctica? Cuéntame tu nivel y qué necesitas."`

const ragSystemPrompt = `Eres BaekhoBot 🥋, asistente comercial especializado en productos de Taekwondo.
Tu objetivo es ayudar a los clientes a encontrar el equipamiento perfecto.
- Sé claro y conciso
- Incluye precios y categorías
- Usa tono amigable y profesional`

// commercialEmojis marks a reply as on-brand; post-processing prepends one
// when the model forgot.
var commercialEmojis = []string{"🛍️", "💰", "🎯", "📏", "🎉"}

// commercialCTAs are appended to short replies per intent.
var commercialCTAs = map[string]string{
	IntentDobokInquiry:   "\n\n¿Cuál dobok se ajusta mejor a tu nivel y presupuesto? 🤔",
	IntentProtection:     "\n\n¿Para qué tipo de entrenamiento necesitas las protecciones? 🛡️",
	IntentPriceInquiry:   "\n\n¿Cuál es tu rango de presupuesto preferido? 💰",
	IntentPromotion:      "\n\n¿Te interesa algún pack en particular? ¡Puedo personalizar una oferta! 🎁",
	IntentRecommendation: "\n\n¡Cuéntame más detalles para darte la mejor recomendación! 📋",
}

// ctaMaxReplyLength keeps CTAs off replies that are already long.
const ctaMaxReplyLength = 1200

var fallbackReplies = map[string]string{
	IntentGreeting: `🛍️ ¡Hola! Soy **BaekhoBot**, tu especialista personal en productos de Taekwondo.

**🎯 Te ayudo con:**
- 🥋 **Doboks**: Desde principiante (100.000 COP) hasta premium (1.000.000 COP)
- 🛡️ **Protecciones**: Básicas, intermedias y competición
- 🏷️ **Promociones**: Packs con hasta 30% de descuento
- 📏 **Tallas**: Guía precisa para todas las edades
- 💰 **Presupuestos**: Opciones para todos los bolsillos

**🎉 OFERTAS ACTUALES:**
- Pack Inicio: Dobok + cinturón + protecciones = 336.000 COP (antes 480.000 COP)
- Pack Competidor: Equipo completo WTF = 1.200.000 COP (antes 1.600.000 COP)

¿Qué necesitas para tu práctica de Taekwondo? 🤔`,

	IntentDobokInquiry: `🥋 **DOBOKS DISPONIBLES - CATÁLOGO COMPLETO**

**🌱 PRINCIPIANTE** (100.000–180.000 COP)
- 100% Algodón, 240-280 GSM
- Cuello en V tradicional, costuras reforzadas
- Tallas 0 hasta 7, durabilidad 2-3 años

**🏆 COMPETICIÓN** (240.000–480.000 COP)
- Poliéster-Algodón 65/35, 320-350 GSM
- Corte atlético, certificación WTF, secado rápido

**👑 PREMIUM** (400.000–1.000.000 COP)
- Algodón premium/Bambú, 400+ GSM
- Bordados personalizados, acabados de lujo

¿Cuál es tu nivel y qué tipo de uso le darás? Te recomiendo la opción perfecta. 🎯`,

	IntentProtection: `🛡️ **PROTECCIONES COMPLETAS - GUÍA ESPECIALIZADA**

**BÁSICAS** (160.000–320.000 COP): Bucal + coquilla + espinilleras — principiantes, sparring ligero
**INTERMEDIAS** (480.000–800.000 COP): Básicas + peto + antebrazos — sparring regular
**COMPLETAS** (800.000–1.600.000 COP): Intermedias + casco + guantes — competición
**ELECTRÓNICAS WTF** (2.000.000–4.000.000 COP): Peto + casco electrónicos — torneos oficiales

¿Para qué tipo de entrenamiento necesitas protección? 🤔`,

	IntentPriceInquiry: `💰 **GUÍA COMPLETA DE PRECIOS - TAEKWONDO GEAR**

- 🥋 Doboks: 100.000 – 1.000.000 COP
- 🛡️ Protecciones: 160.000 – 4.000.000 COP
- 🏅 Cinturones: 32.000 – 240.000 COP
- 🥊 Accesorios de entrenamiento: 60.000 – 1.200.000 COP
- 🎒 Bolsas y transporte: 80.000 – 600.000 COP

**AHORRA CON PACKS:**
- Pack Inicio: 336.000 COP (30% OFF)
- Pack Competidor: 1.200.000 COP (25% OFF)

¿Cuál es tu presupuesto aproximado? Te armo la mejor combinación. 🎯`,

	IntentPromotion: `🎉 **PROMOCIONES ESPECIALES ACTIVAS**

- **Pack Inicio** (30% OFF): Dobok + cinturón + protecciones básicas → 336.000 COP (antes 480.000 COP)
- **Pack Competidor** (25% OFF): Dobok WTF + protecciones completas + bolsa → 1.200.000 COP (antes 1.600.000 COP)

**DESCUENTOS POR VOLUMEN:**
- 10 productos: 15% OFF
- 20 productos: 20% OFF
- 50 productos: 25% OFF + envío gratis

¿Cuál promoción te interesa más? 🛒`,

	IntentRecommendation: `🎯 **RECOMENDACIONES PERSONALIZADAS**

Para darte la mejor opción necesito saber:
- 🥋 Tu nivel: principiante, intermedio, avanzado o competidor
- 📏 Tu talla o edad
- 💰 Tu presupuesto aproximado

**OPCIONES POPULARES:**
- Principiantes: Pack Inicio completo por 336.000 COP
- Competidores: equipo certificado WTF desde 1.200.000 COP

¡Cuéntame más detalles y te doy la recomendación perfecta! 📋`,

	IntentSizeInquiry: `📏 **GUÍA COMPLETA DE TALLAS - TODAS LAS CATEGORÍAS**

**DOBOKS** (por estatura):
- Talla 0 (110-120 cm) a Talla 7 (190+ cm)
- Niños: tallas 0-3 | Adultos: tallas 4-7

**PROTECCIONES**: XS a XL según peso y estatura
**CINTURONES**: largo según cintura + 95 cm para el nudo

¿Necesitas ayuda midiendo alguna talla específica? 📋`,

	IntentBeginnerGear: `🌱 **PACK COMPLETO PARA PRINCIPIANTES**

**LO ESENCIAL PARA EMPEZAR:**
- 🥋 Dobok principiante: 100.000–180.000 COP
- 🏅 Cinturón blanco: 32.000–50.000 COP
- 🛡️ Protecciones básicas: 160.000–320.000 COP

**💡 MEJOR OPCIÓN — Pack Inicio:**
Todo lo anterior por **336.000 COP** (antes 480.000 COP, ahorras 144.000 COP)

¿Cuántos años tienes y cuál es tu presupuesto inicial? Te armo el pack perfecto. 🎒`,

	IntentCompetitionGear: `🏆 **EQUIPAMIENTO PARA COMPETICIÓN OFICIAL**

- 🥋 Dobok certificación WTF: 240.000–480.000 COP
- 🛡️ Protecciones completas: 800.000–1.600.000 COP
- ⚡ Protecciones electrónicas WTF: 2.000.000–4.000.000 COP
- 🎒 Maleta de competición: 320.000–600.000 COP

**💡 Pack Competidor: 1.200.000 COP** (antes 1.600.000 COP)

¿En qué nivel vas a competir? Te armo el paquete exacto que necesitas. 🥇`,
}

const fallbackGeneralReply = `🛍️ ¡Hola! Soy **BaekhoBot**, tu especialista en productos de Taekwondo.

**🎯 ¿En qué puedo ayudarte hoy?**

- 🥋 **Doboks**: Desde 100.000 COP (principiante) hasta 1.000.000 COP (premium)
- 🛡️ **Protecciones**: Sets desde 160.000 COP hasta 4.000.000 COP (electrónicas)
- 📏 **Tallas**: Guía completa para todas las edades
- 💰 **Presupuestos**: Opciones para todos los bolsillos
- 🎉 **Promociones**: Packs con hasta 30% descuento

**🔥 OFERTAS HOY:**
- Pack Inicio: 336.000 COP (antes 480.000 COP) - ¡Ahorra **144.000 COP**!
- Pack Competidor: 1.200.000 COP (antes 1.600.000 COP) - ¡Ahorra **400.000 COP**!

Solo dime:
- ¿Qué tipo de producto buscas?
- ¿Cuál es tu nivel?
- ¿Cuál es tu presupuesto aproximado?

¡Y te daré la recomendación perfecta! 🎯`

const commercialErrorReply = `🛍️ ¡Ups! Pequeño problema técnico en nuestro sistema de productos...

Mientras se resuelve, puedo ayudarte con información básica:

**🎯 PRODUCTOS DISPONIBLES:**
- 🥋 Doboks: 100.000 – 1.000.000 COP
- 🛡️ Protecciones: 160.000 – 4.000.000 COP
- 🏅 Cinturones: 32.000 – 240.000 COP
- 🥊 Accesorios: 60.000 – 1.200.000 COP

**🎉 PROMOCIONES ACTIVAS:**
- Pack Inicio: 336.000 COP (ahorra 144.000 COP)
- Pack Competidor: 1.200.000 COP (ahorra 400.000 COP)

¡Intenta tu consulta de nuevo en unos segundos! Estoy ansioso por ayudarte a encontrar el equipamiento perfecto. 🎒✨`
